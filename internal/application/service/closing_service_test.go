package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ZaighumCheema47/klap-closing-app/internal/config"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
	"github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/cache"
	"github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/sheets"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/apperror"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/printer"
)

// memClosingRepo is an in-memory ClosingRepository for service tests.
type memClosingRepo struct {
	closings map[uuid.UUID]*entity.Closing
}

func newMemClosingRepo() *memClosingRepo {
	return &memClosingRepo{closings: make(map[uuid.UUID]*entity.Closing)}
}

func (r *memClosingRepo) Create(_ context.Context, closing *entity.Closing) error {
	if closing.ID == uuid.Nil {
		closing.ID = uuid.New()
	}
	cp := *closing
	r.closings[closing.ID] = &cp
	return nil
}

func (r *memClosingRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Closing, error) {
	c, ok := r.closings[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Expenses = append([]entity.ExpenseEntry(nil), c.Expenses...)
	sort.Slice(cp.Expenses, func(i, j int) bool { return cp.Expenses[i].Position < cp.Expenses[j].Position })
	return &cp, nil
}

func (r *memClosingRepo) GetByBranchDate(_ context.Context, branch enum.Branch, date time.Time) (*entity.Closing, error) {
	for _, c := range r.closings {
		if c.Branch == branch && c.ClosingDate.Equal(date) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClosingRepo) Update(_ context.Context, closing *entity.Closing) error {
	existing, ok := r.closings[closing.ID]
	if !ok {
		return apperror.ErrNotFound
	}
	cp := *closing
	cp.Expenses = existing.Expenses
	r.closings[closing.ID] = &cp
	return nil
}

func (r *memClosingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.closings, id)
	return nil
}

func (r *memClosingRepo) List(_ context.Context, _ *repository.ClosingFilterParams) ([]entity.Closing, int64, error) {
	var out []entity.Closing
	for _, c := range r.closings {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *memClosingRepo) AppendExpense(_ context.Context, entry *entity.ExpenseEntry) error {
	c, ok := r.closings[entry.ClosingID]
	if !ok {
		return apperror.ErrNotFound
	}
	entry.ID = uuid.New()
	entry.Position = len(c.Expenses)
	c.Expenses = append(c.Expenses, *entry)
	return nil
}

func (r *memClosingRepo) DeleteExpenseAt(_ context.Context, closingID uuid.UUID, position int) error {
	c, ok := r.closings[closingID]
	if !ok {
		return apperror.ErrNotFound
	}
	kept := c.Expenses[:0]
	for _, e := range c.Expenses {
		if e.Position == position {
			continue
		}
		if e.Position > position {
			e.Position--
		}
		kept = append(kept, e)
	}
	c.Expenses = kept
	return nil
}

type closingFixture struct {
	svc   *ClosingService
	repo  *memClosingRepo
	store *sheets.MemoryStore
}

func newClosingFixture() *closingFixture {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store := sheets.NewMemoryStore()
	cfg := &config.SheetsConfig{
		SpreadsheetIDCantt: "ss-cantt",
		SpreadsheetIDDHA:   "ss-dha",
		ClosingsWorksheet:  "Closings",
		SalesWorksheet:     "Sales",
	}
	archive := sheets.NewClosingArchive(store, cfg, cache.NoopClosingCache{}, time.Minute, logger)
	printerSvc := NewPrinterService(printer.NewNullPrinter(), "none", logger)
	repo := newMemClosingRepo()

	return &closingFixture{
		svc:   NewClosingService(repo, archive, printerSvc, nil, "", logger),
		repo:  repo,
		store: store,
	}
}

func TestStartClosingResumesExistingDraft(t *testing.T) {
	fx := newClosingFixture()
	ctx := context.Background()
	userID := uuid.New()
	input := &StartClosingInput{
		Branch:      enum.BranchDHA,
		ClosingDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	first, err := fx.svc.StartClosing(ctx, userID, input)
	if err != nil {
		t.Fatalf("StartClosing() error = %v", err)
	}
	second, err := fx.svc.StartClosing(ctx, userID, input)
	if err != nil {
		t.Fatalf("second StartClosing() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("second start created a new draft: %s != %s", first.ID, second.ID)
	}
}

func TestUpdateSalesParsesPermissively(t *testing.T) {
	fx := newClosingFixture()
	ctx := context.Background()

	closing, err := fx.svc.StartClosing(ctx, uuid.New(), &StartClosingInput{
		Branch:      enum.BranchCantt,
		ClosingDate: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("StartClosing() error = %v", err)
	}

	updated, err := fx.svc.UpdateSales(ctx, closing.ID, &SalesInput{
		GrossSale:    "75,000",
		CashSale:     "Rs 50,000.99",
		CardSale:     "20000",
		DeliverySale: "abc",
		CCTips:       "",
	})
	if err != nil {
		t.Fatalf("UpdateSales() error = %v", err)
	}
	if updated.GrossSale != 75000 || updated.CashSale != 50000 {
		t.Errorf("parsed gross/cash = %d/%d, want 75000/50000", updated.GrossSale, updated.CashSale)
	}
	if updated.DeliverySale != 0 || updated.CCTips != 0 {
		t.Errorf("junk and blank input should parse to zero, got %d/%d", updated.DeliverySale, updated.CCTips)
	}

	rec := updated.Reconciliation()
	if !rec.Mismatch {
		t.Error("Mismatch = false, want true (50000+20000+0 != 75000)")
	}
}

func TestAddExpenseValidation(t *testing.T) {
	fx := newClosingFixture()
	ctx := context.Background()

	closing, _ := fx.svc.StartClosing(ctx, uuid.New(), &StartClosingInput{
		Branch:      enum.BranchCantt,
		ClosingDate: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name  string
		input ExpenseInput
	}{
		{"placeholder category", ExpenseInput{Category: "Select Category", Amount: "100"}},
		{"empty category", ExpenseInput{Category: "  ", Amount: "100"}},
		{"non-numeric amount", ExpenseInput{Category: "Staff", Amount: "abc"}},
		{"zero amount", ExpenseInput{Category: "Staff", Amount: "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := fx.svc.AddExpense(ctx, closing.ID, &tt.input); err == nil {
				t.Error("AddExpense() error = nil, want validation error")
			}
		})
	}
}

func TestRemoveExpenseRenumbers(t *testing.T) {
	fx := newClosingFixture()
	ctx := context.Background()

	closing, _ := fx.svc.StartClosing(ctx, uuid.New(), &StartClosingInput{
		Branch:      enum.BranchCantt,
		ClosingDate: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
	})

	for _, in := range []ExpenseInput{
		{Category: "Staff", Description: "Overtime", Amount: "3000"},
		{Category: "Fuel", Description: "Diesel", Amount: "1200"},
		{Category: "Groceries", Description: "Vegetables", Amount: "800"},
	} {
		if _, err := fx.svc.AddExpense(ctx, closing.ID, &in); err != nil {
			t.Fatalf("AddExpense(%s) error = %v", in.Category, err)
		}
	}

	updated, err := fx.svc.RemoveExpense(ctx, closing.ID, 1)
	if err != nil {
		t.Fatalf("RemoveExpense() error = %v", err)
	}
	if len(updated.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2", len(updated.Expenses))
	}
	if updated.Expenses[0].Category != "Staff" || updated.Expenses[1].Category != "Groceries" {
		t.Errorf("remaining = %s, %s, want Staff, Groceries", updated.Expenses[0].Category, updated.Expenses[1].Category)
	}
	if updated.Expenses[1].Position != 1 {
		t.Errorf("Position after renumber = %d, want 1", updated.Expenses[1].Position)
	}
	if updated.ExpensesTotal() != 3800 {
		t.Errorf("ExpensesTotal() = %d, want 3800", updated.ExpensesTotal())
	}

	if _, err := fx.svc.RemoveExpense(ctx, closing.ID, 5); err == nil {
		t.Error("RemoveExpense(out of range) error = nil, want error")
	}
}

func TestSubmitClosingEndToEnd(t *testing.T) {
	fx := newClosingFixture()
	ctx := context.Background()

	closing, err := fx.svc.StartClosing(ctx, uuid.New(), &StartClosingInput{
		Branch:      enum.BranchCantt,
		ClosingDate: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("StartClosing() error = %v", err)
	}

	if _, err := fx.svc.UpdateSales(ctx, closing.ID, &SalesInput{
		GrossSale:    "75000",
		CashSale:     "50000",
		CardSale:     "20000",
		DeliverySale: "5000",
		CCTips:       "500",
	}); err != nil {
		t.Fatalf("UpdateSales() error = %v", err)
	}
	for _, in := range []ExpenseInput{
		{Category: "Staff", Description: "Overtime", Amount: "3000", HasBill: true},
		{Category: "Fuel", Description: "Generator diesel", Amount: "1200"},
	} {
		if _, err := fx.svc.AddExpense(ctx, closing.ID, &in); err != nil {
			t.Fatalf("AddExpense(%s) error = %v", in.Category, err)
		}
	}

	submitted, err := fx.svc.SubmitClosing(ctx, closing.ID)
	if err != nil {
		t.Fatalf("SubmitClosing() error = %v", err)
	}
	if submitted.ClosingID != "CANTT290126CR" {
		t.Errorf("ClosingID = %q, want CANTT290126CR", submitted.ClosingID)
	}
	if submitted.Status != enum.ClosingStatusSubmitted {
		t.Errorf("Status = %v, want submitted", submitted.Status)
	}
	if submitted.SubmittedAt == nil {
		t.Error("SubmittedAt = nil, want timestamp")
	}
	if rec := submitted.Reconciliation(); rec.ExpectedCash != 45300 {
		t.Errorf("ExpectedCash = %d, want 45300", rec.ExpectedCash)
	}

	rows, err := fx.store.ReadAll(ctx, "ss-cantt", "Closings")
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	var forID int
	for _, row := range rows {
		if row[0] == "CANTT290126CR" {
			forID++
		}
	}
	if forID != 3 {
		t.Errorf("rows for closing id = %d, want 3 (2 expenses + CC tip)", forID)
	}

	sales, err := fx.store.ReadAll(ctx, "ss-cantt", "Sales")
	if err != nil {
		t.Fatalf("ReadAll(sales) error = %v", err)
	}
	if len(sales) != 1 || sales[0][0] != "CANTT290126CR" {
		t.Fatalf("sales rows = %v, want one row for CANTT290126CR", sales)
	}

	// Retrieval round-trips through the sheet.
	archived, err := fx.svc.RetrieveArchived(ctx, "CANTT290126CR")
	if err != nil {
		t.Fatalf("RetrieveArchived() error = %v", err)
	}
	if archived.ExpensesTotal() != 4200 || archived.CCTips != 500 {
		t.Errorf("round-trip total/tips = %d/%d, want 4200/500", archived.ExpensesTotal(), archived.CCTips)
	}
}

func TestSubmitClosingStrictValidation(t *testing.T) {
	fx := newClosingFixture()
	ctx := context.Background()

	closing, _ := fx.svc.StartClosing(ctx, uuid.New(), &StartClosingInput{
		Branch:      enum.BranchCantt,
		ClosingDate: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
	})

	// No gross entered.
	if _, err := fx.svc.SubmitClosing(ctx, closing.ID); err == nil {
		t.Error("SubmitClosing() with zero gross: error = nil, want error")
	}

	// Breakdown does not reconcile.
	fx.svc.UpdateSales(ctx, closing.ID, &SalesInput{
		GrossSale: "75000", CashSale: "50000", CardSale: "20000", DeliverySale: "1000",
	})
	if _, err := fx.svc.SubmitClosing(ctx, closing.ID); err == nil {
		t.Error("SubmitClosing() with mismatch: error = nil, want error")
	}

	// Sheet must stay untouched after failed submissions.
	rows, _ := fx.store.ReadAll(ctx, "ss-cantt", "Closings")
	if len(rows) != 0 {
		t.Errorf("sheet rows after failed submits = %d, want 0", len(rows))
	}
}

func TestResubmitReplacesSheetRows(t *testing.T) {
	fx := newClosingFixture()
	ctx := context.Background()

	closing, _ := fx.svc.StartClosing(ctx, uuid.New(), &StartClosingInput{
		Branch:      enum.BranchDHA,
		ClosingDate: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
	})
	fx.svc.UpdateSales(ctx, closing.ID, &SalesInput{
		GrossSale: "10000", CashSale: "10000",
	})
	fx.svc.AddExpense(ctx, closing.ID, &ExpenseInput{Category: "Staff", Amount: "500"})

	if _, err := fx.svc.SubmitClosing(ctx, closing.ID); err != nil {
		t.Fatalf("first SubmitClosing() error = %v", err)
	}

	// Amend and resubmit.
	fx.svc.AddExpense(ctx, closing.ID, &ExpenseInput{Category: "Fuel", Amount: "700"})
	if _, err := fx.svc.SubmitClosing(ctx, closing.ID); err != nil {
		t.Fatalf("second SubmitClosing() error = %v", err)
	}

	rows, _ := fx.store.ReadAll(ctx, "ss-dha", "Closings")
	if len(rows) != 2 {
		t.Errorf("rows after resubmit = %d, want 2 (replaced, not appended)", len(rows))
	}
	sales, _ := fx.store.ReadAll(ctx, "ss-dha", "Sales")
	if len(sales) != 1 {
		t.Errorf("sales rows after resubmit = %d, want 1", len(sales))
	}

	if _, err := fx.svc.RetrieveArchived(ctx, "DHA999999CR"); err == nil {
		t.Error("RetrieveArchived(malformed id) error = nil, want error")
	}
}
