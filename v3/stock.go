package v3

import (
	"sort"
	"strconv"
)

// StockReconciler allocates surrogate stock ids across a whole maketurn
// run, so two bases created in the same call never collide (§4.9-5,
// §4.11).
type StockReconciler struct {
	nextID int
}

// NewStockReconciler seeds the surrogate allocator past the current
// maximum stock id in the snapshot.
func NewStockReconciler(all []Stock) *StockReconciler {
	max := 0
	for _, s := range all {
		if s.ID > max {
			max = s.ID
		}
	}
	return &StockReconciler{nextID: max + 1}
}

func (r *StockReconciler) allocate() int {
	id := r.nextID
	r.nextID++
	return id
}

// Reconcile computes the updated/created Stock rows for one base's
// (stockType) slot array given newAmounts (stockId -> new amount). An
// existing record has its amount set and builtamount adjusted by the
// delta; a missing one is created with a fresh surrogate id and
// builtamount equal to the full new amount (§4.11).
func (r *StockReconciler) Reconcile(existing []Stock, baseID, stockType int, newAmounts map[int]int, warnings *[]Warning) []Stock {
	byStockID := make(map[int]Stock, len(existing))
	for _, s := range existing {
		if s.BaseID == baseID && s.StockType == stockType {
			byStockID[s.StockID] = s
		}
	}

	ids := make([]int, 0, len(newAmounts))
	for id := range newAmounts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	created := false
	out := make([]Stock, 0, len(ids))
	for _, stockID := range ids {
		amount := newAmounts[stockID]
		if s, ok := byStockID[stockID]; ok {
			delta := amount - s.Amount
			s.Amount = amount
			s.BuiltAmount += delta
			out = append(out, s)
			continue
		}
		out = append(out, Stock{
			ID:          r.allocate(),
			BaseID:      baseID,
			StockType:   stockType,
			StockID:     stockID,
			Amount:      amount,
			BuiltAmount: amount,
		})
		created = true
	}
	if created {
		*warnings = append(*warnings, Warning{Kind: Semantics, Message: "new stock record created at base " + strconv.Itoa(baseID) + "; re-download advised"})
	}
	return out
}
