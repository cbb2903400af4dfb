package entity

import "testing"

func TestReconcileMismatch(t *testing.T) {
	tests := []struct {
		name                       string
		cash, card, delivery, gross int64
		wantMismatch               bool
	}{
		{"balanced breakdown", 50000, 20000, 5000, 75000, false},
		{"breakdown short of gross", 50000, 20000, 0, 75000, true},
		{"breakdown over gross", 50000, 20000, 10000, 75000, true},
		{"zero gross suppresses mismatch", 50000, 20000, 5000, 0, false},
		{"all zero", 0, 0, 0, 0, false},
		{"gross set, nothing else", 0, 0, 0, 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.cash, tt.card, tt.delivery, tt.gross, 0, 0)
			if got.Mismatch != tt.wantMismatch {
				t.Errorf("mismatch = %v, want %v", got.Mismatch, tt.wantMismatch)
			}
		})
	}
}

func TestReconcileExpectedCash(t *testing.T) {
	r := Reconcile(50000, 20000, 5000, 75000, 4200, 500)
	if r.ExpectedCash != 45300 {
		t.Errorf("expected cash = %d, want 45300", r.ExpectedCash)
	}

	// Expenses and tips above cash go negative, not zero.
	r = Reconcile(1000, 0, 0, 0, 1500, 0)
	if r.ExpectedCash != -500 {
		t.Errorf("expected cash = %d, want -500", r.ExpectedCash)
	}
}

func TestClosingReconciliation(t *testing.T) {
	c := &Closing{
		GrossSale:    75000,
		CashSale:     50000,
		CardSale:     20000,
		DeliverySale: 5000,
		CCTips:       500,
		Expenses: []ExpenseEntry{
			{Position: 0, Category: "Staff", Amount: 3000},
			{Position: 1, Category: "Fuel", Amount: 1200},
		},
	}

	if total := c.ExpensesTotal(); total != 4200 {
		t.Errorf("expenses total = %d, want 4200", total)
	}

	r := c.Reconciliation()
	if r.Mismatch {
		t.Error("balanced closing should not flag mismatch")
	}
	if r.ExpectedCash != 45300 {
		t.Errorf("expected cash = %d, want 45300", r.ExpectedCash)
	}
}
