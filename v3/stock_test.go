package v3

import "testing"

func TestStockReconcileUpdatesExisting(t *testing.T) {
	var warnings []Warning
	r := NewStockReconciler([]Stock{{ID: 5, BaseID: 1, StockType: stockHull, StockID: 2, Amount: 3}})
	out := r.Reconcile([]Stock{{ID: 5, BaseID: 1, StockType: stockHull, StockID: 2, Amount: 3}}, 1, stockHull, map[int]int{2: 8}, &warnings)
	if len(out) != 1 || out[0].ID != 5 || out[0].Amount != 8 || out[0].BuiltAmount != 5 {
		t.Errorf("Reconcile = %+v, want id=5 amount=8 builtamount=5", out)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %+v", warnings)
	}
}

func TestStockReconcileCreatesSurrogateID(t *testing.T) {
	var warnings []Warning
	existing := []Stock{{ID: 5, BaseID: 1, StockType: stockHull, StockID: 2, Amount: 3}}
	r := NewStockReconciler(existing)
	out := r.Reconcile(existing, 1, stockHull, map[int]int{9: 4}, &warnings)
	if len(out) != 1 || out[0].ID <= 5 {
		t.Errorf("expected surrogate id > 5, got %+v", out)
	}
	if len(warnings) != 1 || warnings[0].Kind != Semantics {
		t.Errorf("expected a re-download warning, got %+v", warnings)
	}
}

func TestStockReconcilerNoCollisionAcrossBases(t *testing.T) {
	var warnings []Warning
	r := NewStockReconciler([]Stock{{ID: 10}})
	out1 := r.Reconcile(nil, 1, stockHull, map[int]int{1: 1}, &warnings)
	out2 := r.Reconcile(nil, 2, stockHull, map[int]int{1: 1}, &warnings)
	if out1[0].ID == out2[0].ID {
		t.Errorf("expected distinct surrogate ids, got %d and %d", out1[0].ID, out2[0].ID)
	}
}
