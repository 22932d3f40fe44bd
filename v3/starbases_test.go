package v3

import "testing"

func TestStockArrayPlacesAmountByStockID(t *testing.T) {
	var warnings []Warning
	stocks := []Stock{{BaseID: 10, StockType: stockHull, StockID: 3, Amount: 7}}
	out := stockArray(stocks, 10, stockHull, 20, &warnings)
	if out[2] != 7 {
		t.Errorf("out[2] = %d, want 7", out[2])
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %+v", warnings)
	}
}

func TestStockArrayWarnsOnOutOfRange(t *testing.T) {
	var warnings []Warning
	stocks := []Stock{{BaseID: 10, StockType: stockHull, StockID: 99, Amount: 1}}
	stockArray(stocks, 10, stockHull, 20, &warnings)
	if len(warnings) != 1 || warnings[0].Kind != Semantics {
		t.Errorf("expected one Semantics warning, got %+v", warnings)
	}
}

func TestBuildSlotForFoundAndMissing(t *testing.T) {
	var warnings []Warning
	raceHulls := []int{5, 6, 7}
	if got := buildSlotFor(6, raceHulls, &warnings); got != 2 {
		t.Errorf("buildSlotFor(6) = %d, want 2", got)
	}
	if got := buildSlotFor(99, raceHulls, &warnings); got != 0 {
		t.Errorf("buildSlotFor(99) = %d, want 0", got)
	}
	if len(warnings) != 1 || warnings[0].Kind != Semantics {
		t.Errorf("expected one Semantics warning for unbuildable hull, got %+v", warnings)
	}
}

func TestBuildSlotForZeroNoWarning(t *testing.T) {
	var warnings []Warning
	if got := buildSlotFor(0, nil, &warnings); got != 0 {
		t.Errorf("buildSlotFor(0) = %d, want 0", got)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %+v", warnings)
	}
}

func TestPackStarbaseDisFightersAddsCashUsed(t *testing.T) {
	var warnings []Warning
	owners := newOwnerMap(nil)
	ledger := NewLedger()
	ledger.Add(500, 500, counterCashUsed, 40) // mine cash cost, as in S2/S3
	b := Starbase{PlanetID: 10, FightersBuilt: 5, Fighters: 5}
	packStarbaseDis(b, nil, owners, 0, nil, 500, 500, ledger, &warnings)

	got := ledger.Use(500, 500, counterCashUsed, 0)
	want := int64(40 + 5*fighterCashCost) // 40 + 500 = 540
	if got != want {
		t.Errorf("cashUsed after fighters built = %d, want %d", got, want)
	}
}

func TestDecodeStarbaseRecordRoundTrip(t *testing.T) {
	owners := newOwnerMap(nil)
	var warnings []Warning
	b := Starbase{PlanetID: 5, Defense: 3, Damage: 1, Fighters: 7, Mission: 2, BuildHullID: 7}
	raceHulls := []int{5, 6, 7}
	encoded := packStarbaseRecord(b, nil, owners, 0, raceHulls, &warnings)
	got, stocks, buildSlot, err := decodeStarbaseRecord(encoded, owners)
	if err != nil {
		t.Fatal(err)
	}
	if got.PlanetID != b.PlanetID || got.Defense != b.Defense || got.Fighters != b.Fighters || got.Mission != b.Mission {
		t.Errorf("round trip = %+v, want matching fields of %+v", got, b)
	}
	if len(stocks[stockHull]) != 20 {
		t.Errorf("hull stock len = %d, want 20", len(stocks[stockHull]))
	}
	if buildSlot <= 0 || raceHulls[buildSlot-1] != b.BuildHullID {
		t.Errorf("buildSlot = %d, want it to resolve back to hull %d via raceHulls", buildSlot, b.BuildHullID)
	}
}

func TestPackStarbasesOnlyLocalOwner(t *testing.T) {
	owners := newOwnerMap(nil)
	ledger := NewLedger()
	var warnings []Warning
	bases := []Starbase{{PlanetID: 1}, {PlanetID: 2}}
	planetOwner := map[int]int{1: 1, 2: 2}
	coordOf := map[int][2]int{1: {100, 100}, 2: {200, 200}}
	got := PackStarbases(bases, nil, planetOwner, 1, owners, nil, ledger, coordOf, &warnings)
	if len(got) != 1 || got[0].PlanetID != 1 {
		t.Errorf("PackStarbases = %+v, want only planet 1's base", got)
	}
}
