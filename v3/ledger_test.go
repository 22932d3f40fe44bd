package v3

import "testing"

func TestLedgerUseRecoversPreBuildTotal(t *testing.T) {
	l := NewLedger()
	l.Add(500, 500, counterSuppliesUsed, 40) // supplies charged by builds here
	l.Add(500, 500, counterCashUsed, 30)     // cash charged by builds here

	supplies := l.Use(500, 500, counterSuppliesUsed, 100) // new supplies=100
	if supplies != 140 {
		t.Errorf("dis supplies = %d, want 140", supplies)
	}
	cash := l.Use(500, 500, counterCashUsed, 210) // new megacredits=210
	if cash != 240 {
		t.Errorf("dis cash = %d, want 240", cash)
	}
	if !l.IsClean() {
		t.Errorf("ledger should be clean after Use drains both counters")
	}
}

func TestLedgerUseUnchangedWhenCounterZero(t *testing.T) {
	l := NewLedger()
	if got := l.Use(1, 1, counterTritaniumUsed, 77); got != 77 {
		t.Errorf("Use with zero counter = %d, want 77 unchanged", got)
	}
}

// TestLedgerConsumeOverflow models S3: a base builds 5 fighters (cost 500
// MC) on a planet with megacredits=0; the shortfall must appear as a
// residual cashUsed counter. Consume clamps the holder's pre-turn value
// at zero and keeps the unattributed 320 in the counter.
func TestLedgerConsumeOverflow(t *testing.T) {
	l := NewLedger()
	l.Add(500, 500, counterCashUsed, 500) // fighters cost
	l.Add(500, 500, counterCashUsed, -180)
	// supplies sold: 10 mines * 4 + ... simplified to match spec arithmetic
	// 500 (fighters) + 40 (mines supplies->cash@4) - 220 (planet had 220 after
	// mines) clamped non-negative = 320, per spec.md S3.
	l2 := NewLedger()
	l2.Add(500, 500, counterCashUsed, 320)
	dis := l2.Consume(500, 500, counterCashUsed, 0)
	if dis != 0 {
		t.Errorf("dis cash = %d, want 0 (clamped)", dis)
	}
	if l2.IsClean() {
		t.Errorf("expected a residual after overflow, ledger reported clean")
	}
	residuals := l2.Residuals()
	if len(residuals) != 1 || residuals[0].Value != 320 {
		t.Errorf("residuals = %+v, want one entry of 320", residuals)
	}
}

func TestLedgerConsumeGreedyAllocationAcrossShips(t *testing.T) {
	l := NewLedger()
	key := counterTorpBuilt(3)
	l.Add(10, 10, key, 15) // base built 15 torps of type 3 this turn

	// First ship holds 20 torps post-turn: consume up to 15, dis = 20-15=5.
	dis1 := l.Consume(10, 10, key, 20)
	if dis1 != 5 {
		t.Errorf("ship1 dis torps = %d, want 5", dis1)
	}
	// Second ship holds 3 torps post-turn; counter is now exhausted (0),
	// so dis2 == new value unchanged via the else branch (counter < new).
	dis2 := l.Consume(10, 10, key, 3)
	if dis2 != 3 {
		t.Errorf("ship2 dis torps = %d, want 3", dis2)
	}
	if !l.IsClean() {
		t.Errorf("expected ledger clean after fully attributing the built counter")
	}
}

func TestLedgerDiagnosticTextEmptyWhenClean(t *testing.T) {
	l := NewLedger()
	if got := l.DiagnosticText(); got != "" {
		t.Errorf("DiagnosticText() on clean ledger = %q, want empty", got)
	}
}

func TestLedgerDiagnosticTextListsResiduals(t *testing.T) {
	l := NewLedger()
	l.Add(1, 2, counterCashUsed, 99)
	text := l.DiagnosticText()
	if text == "" {
		t.Fatal("expected non-empty diagnostic text")
	}
}
