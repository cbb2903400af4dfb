package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ZaighumCheema47/klap-closing-app/internal/config"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/cache"
)

func newTestArchive(store *MemoryStore) *closingArchive {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.SheetsConfig{
		SpreadsheetIDCantt: "ss-cantt",
		SpreadsheetIDDHA:   "ss-dha",
		ClosingsWorksheet:  "Closings",
		SalesWorksheet:     "Sales",
	}
	return NewClosingArchive(store, cfg, cache.NoopClosingCache{}, time.Minute, logger).(*closingArchive)
}

func sampleClosing() *entity.ArchivedClosing {
	return &entity.ArchivedClosing{
		ClosingID: "CANTT290126CR",
		Branch:    enum.BranchCantt,
		Date:      "2026-01-29",
		CCTips:    500,
		Expenses: []entity.ArchivedExpense{
			{Date: "2026-01-29", Category: "Staff", Description: "Overtime", Amount: 3000, HasBill: true},
			{Date: "2026-01-29", Category: "Fuel", Description: "Generator diesel", Amount: 1200},
		},
	}
}

func sampleSales() *entity.SalesRecord {
	return &entity.SalesRecord{
		ClosingID: "CANTT290126CR",
		Date:      "2026-01-29",
		Cash:      50000,
		Card:      20000,
		Foodpanda: 5000,
		Gross:     75000,
	}
}

func TestUpsertWritesExpenseAndTipRows(t *testing.T) {
	store := NewMemoryStore()
	archive := newTestArchive(store)
	ctx := context.Background()

	if err := archive.Upsert(ctx, enum.BranchCantt, sampleClosing(), sampleSales()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	rows, err := store.ReadAll(ctx, "ss-cantt", "Closings")
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("closings rows = %d, want 3 (2 expenses + tip row)", len(rows))
	}
	tip := rows[2]
	if tip[2] != enum.CategoryCCTip || tip[4] != "500" {
		t.Errorf("tip row = %v, want CC TIP of 500", tip)
	}
	for _, row := range rows {
		if row[0] != "CANTT290126CR" {
			t.Errorf("row keyed by %q, want CANTT290126CR", row[0])
		}
	}

	sales, err := store.ReadAll(ctx, "ss-cantt", "Sales")
	if err != nil {
		t.Fatalf("ReadAll(sales) error = %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("sales rows = %d, want 1", len(sales))
	}
	if sales[0][5] != "75000" {
		t.Errorf("gross column = %q, want 75000", sales[0][5])
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	archive := newTestArchive(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := archive.Upsert(ctx, enum.BranchCantt, sampleClosing(), sampleSales()); err != nil {
			t.Fatalf("Upsert() attempt %d error = %v", i+1, err)
		}
	}

	rows, _ := store.ReadAll(ctx, "ss-cantt", "Closings")
	if len(rows) != 3 {
		t.Errorf("closings rows after 3 upserts = %d, want 3", len(rows))
	}
	sales, _ := store.ReadAll(ctx, "ss-cantt", "Sales")
	if len(sales) != 1 {
		t.Errorf("sales rows after 3 upserts = %d, want 1", len(sales))
	}
}

func TestUpsertReplacesPreviousRows(t *testing.T) {
	store := NewMemoryStore()
	archive := newTestArchive(store)
	ctx := context.Background()

	if err := archive.Upsert(ctx, enum.BranchCantt, sampleClosing(), sampleSales()); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	revised := sampleClosing()
	revised.CCTips = 0
	revised.Expenses = []entity.ArchivedExpense{
		{Date: "2026-01-29", Category: "Maintenance", Description: "AC repair", Amount: 8000, HasBill: true},
	}
	if err := archive.Upsert(ctx, enum.BranchCantt, revised, sampleSales()); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	rows, _ := store.ReadAll(ctx, "ss-cantt", "Closings")
	if len(rows) != 1 {
		t.Fatalf("closings rows = %d, want only the revised expense", len(rows))
	}
	if rows[0][2] != "Maintenance" || rows[0][4] != "8000" {
		t.Errorf("surviving row = %v, want the revised expense", rows[0])
	}
}

func TestUpsertLeavesOtherClosingsAlone(t *testing.T) {
	store := NewMemoryStore()
	archive := newTestArchive(store)
	ctx := context.Background()

	other := sampleClosing()
	other.ClosingID = "CANTT280126CR"
	other.Date = "2026-01-28"
	if err := archive.Upsert(ctx, enum.BranchCantt, other, nil); err != nil {
		t.Fatalf("Upsert(other) error = %v", err)
	}
	if err := archive.Upsert(ctx, enum.BranchCantt, sampleClosing(), nil); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := archive.Upsert(ctx, enum.BranchCantt, sampleClosing(), nil); err != nil {
		t.Fatalf("repeat Upsert() error = %v", err)
	}

	rows, _ := store.ReadAll(ctx, "ss-cantt", "Closings")
	var otherRows int
	for _, row := range rows {
		if row[0] == "CANTT280126CR" {
			otherRows++
		}
	}
	if otherRows != 3 {
		t.Errorf("rows for untouched closing = %d, want 3", otherRows)
	}
	if len(rows) != 6 {
		t.Errorf("total rows = %d, want 6", len(rows))
	}
}

func TestGetReconstructsClosing(t *testing.T) {
	store := NewMemoryStore()
	archive := newTestArchive(store)
	ctx := context.Background()

	if err := archive.Upsert(ctx, enum.BranchCantt, sampleClosing(), sampleSales()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := archive.Get(ctx, enum.BranchCantt, "CANTT290126CR")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want closing")
	}
	if len(got.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2 (tip row folded out)", len(got.Expenses))
	}
	if got.CCTips != 500 {
		t.Errorf("CCTips = %d, want 500", got.CCTips)
	}
	if got.ExpensesTotal() != 4200 {
		t.Errorf("ExpensesTotal() = %d, want 4200", got.ExpensesTotal())
	}
	if !got.Expenses[0].HasBill || got.Expenses[1].HasBill {
		t.Errorf("bill flags = %v/%v, want true/false", got.Expenses[0].HasBill, got.Expenses[1].HasBill)
	}
}

func TestGetUnknownClosingReturnsNil(t *testing.T) {
	archive := newTestArchive(NewMemoryStore())

	got, err := archive.Get(context.Background(), enum.BranchDHA, "DHA010126CR")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for unknown closing", got)
	}
}

func TestSalesByMonthFiltersAndSorts(t *testing.T) {
	store := NewMemoryStore()
	archive := newTestArchive(store)
	ctx := context.Background()

	days := []struct {
		id   string
		date string
	}{
		{"CANTT300126CR", "2026-01-30"},
		{"CANTT290126CR", "2026-01-29"},
		{"CANTT010226CR", "2026-02-01"},
	}
	for _, d := range days {
		sales := sampleSales()
		sales.ClosingID = d.id
		sales.Date = d.date
		closing := sampleClosing()
		closing.ClosingID = d.id
		closing.Date = d.date
		if err := archive.Upsert(ctx, enum.BranchCantt, closing, sales); err != nil {
			t.Fatalf("Upsert(%s) error = %v", d.id, err)
		}
	}

	records, err := archive.SalesByMonth(ctx, enum.BranchCantt, 2026, time.January)
	if err != nil {
		t.Fatalf("SalesByMonth() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Date != "2026-01-29" || records[1].Date != "2026-01-30" {
		t.Errorf("dates = %s, %s, want ascending January dates", records[0].Date, records[1].Date)
	}
	if records[0].Gross != 75000 {
		t.Errorf("Gross = %d, want 75000", records[0].Gross)
	}
}
