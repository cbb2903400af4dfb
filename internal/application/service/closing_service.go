package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/apperror"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/closingid"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/email"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/money"
)

// rowDate is the date format written to and read from sheet rows.
const rowDate = "2006-01-02"

// ClosingService drives the daily closing workflow: draft, sales
// figures, expense ledger, reconciliation, and submission to the
// remote sheet.
type ClosingService struct {
	closingRepo repository.ClosingRepository
	archive     repository.ClosingArchive
	printerSvc  *PrinterService
	emailSvc    *email.EmailService
	ownerEmail  string
	logger      *logrus.Logger
}

// NewClosingService creates a new closing service
func NewClosingService(
	closingRepo repository.ClosingRepository,
	archive repository.ClosingArchive,
	printerSvc *PrinterService,
	emailSvc *email.EmailService,
	ownerEmail string,
	logger *logrus.Logger,
) *ClosingService {
	return &ClosingService{
		closingRepo: closingRepo,
		archive:     archive,
		printerSvc:  printerSvc,
		emailSvc:    emailSvc,
		ownerEmail:  ownerEmail,
		logger:      logger,
	}
}

// StartClosingInput represents the input for starting a closing session
type StartClosingInput struct {
	Branch      enum.Branch
	ClosingDate time.Time
}

// StartClosing returns the closing draft for the branch and date,
// creating one if none exists. One draft per branch per day; starting
// again resumes the existing session.
func (s *ClosingService) StartClosing(ctx context.Context, userID uuid.UUID, input *StartClosingInput) (*entity.Closing, error) {
	if !input.Branch.Valid() {
		return nil, apperror.NewBadRequestError("Unknown branch")
	}
	date := input.ClosingDate.Truncate(24 * time.Hour)

	existing, err := s.closingRepo.GetByBranchDate(ctx, input.Branch, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	closing := &entity.Closing{
		UserID:      userID,
		Branch:      input.Branch,
		ClosingDate: date,
		Status:      enum.ClosingStatusDraft,
	}
	if err := s.closingRepo.Create(ctx, closing); err != nil {
		return nil, err
	}
	return closing, nil
}

// GetClosing retrieves a closing draft by its database id
func (s *ClosingService) GetClosing(ctx context.Context, id uuid.UUID) (*entity.Closing, error) {
	closing, err := s.closingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if closing == nil {
		return nil, apperror.NewNotFoundError("Closing")
	}
	return closing, nil
}

// ListClosings returns closings matching the filter
func (s *ClosingService) ListClosings(ctx context.Context, params *repository.ClosingFilterParams) ([]entity.Closing, int64, error) {
	return s.closingRepo.List(ctx, params)
}

// SalesInput carries the operator-entered sales figures. Values arrive
// as raw text from the form; parsing is permissive and never rejects.
type SalesInput struct {
	GrossSale    string
	CashSale     string
	CardSale     string
	DeliverySale string
	CCTips       string
}

// UpdateSales parses and stores the sales figures, returning the
// closing with its recomputed reconciliation.
func (s *ClosingService) UpdateSales(ctx context.Context, id uuid.UUID, input *SalesInput) (*entity.Closing, error) {
	closing, err := s.GetClosing(ctx, id)
	if err != nil {
		return nil, err
	}

	closing.GrossSale = money.Parse(input.GrossSale)
	closing.CashSale = money.Parse(input.CashSale)
	closing.CardSale = money.Parse(input.CardSale)
	closing.DeliverySale = money.Parse(input.DeliverySale)
	closing.CCTips = money.Parse(input.CCTips)

	if err := s.closingRepo.Update(ctx, closing); err != nil {
		return nil, err
	}
	return closing, nil
}

// ExpenseInput represents one expense to append to the ledger
type ExpenseInput struct {
	Category    string
	Description string
	Amount      string
	HasBill     bool
}

// AddExpense appends an expense entry to the closing's ledger
func (s *ClosingService) AddExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Closing, error) {
	closing, err := s.GetClosing(ctx, id)
	if err != nil {
		return nil, err
	}

	if !enum.IsCategorySet(input.Category) {
		return nil, apperror.NewBadRequestError("Please select an expense category")
	}
	amount, err := money.ParseStrict(input.Amount)
	if err != nil {
		return nil, apperror.NewBadRequestError("Expense amount is not a number")
	}
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Expense amount must be greater than zero")
	}

	entry := &entity.ExpenseEntry{
		ClosingID:   closing.ID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      amount,
		HasBill:     input.HasBill,
	}
	if err := s.closingRepo.AppendExpense(ctx, entry); err != nil {
		return nil, err
	}
	return s.GetClosing(ctx, id)
}

// RemoveExpense deletes the expense at the given position and renumbers
// the entries after it.
func (s *ClosingService) RemoveExpense(ctx context.Context, id uuid.UUID, position int) (*entity.Closing, error) {
	closing, err := s.GetClosing(ctx, id)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= len(closing.Expenses) {
		return nil, apperror.NewBadRequestError("No expense at that position")
	}

	if err := s.closingRepo.DeleteExpenseAt(ctx, closing.ID, position); err != nil {
		return nil, err
	}
	return s.GetClosing(ctx, id)
}

// SubmitClosing validates the draft, replaces its rows in the remote
// sheet, marks it submitted, prints the receipt, and emails the owner.
//
// Submission is strict: gross sale must be entered and the sales
// breakdown must reconcile. A sheet failure aborts before any local
// state changes, so the draft survives for a retry. Resubmitting an
// already-submitted closing re-runs the replace, so the sheet always
// reflects the latest state.
func (s *ClosingService) SubmitClosing(ctx context.Context, id uuid.UUID) (*entity.Closing, error) {
	closing, err := s.GetClosing(ctx, id)
	if err != nil {
		return nil, err
	}

	if closing.GrossSale <= 0 {
		return nil, apperror.NewUnprocessableError("Gross sale is required before submitting")
	}
	rec := closing.Reconciliation()
	if rec.Mismatch {
		return nil, apperror.NewUnprocessableError("Sales breakdown does not add up to gross sale")
	}

	closing.ClosingID = closingid.Make(closing.Branch, closing.ClosingDate)

	archived, sales := s.flatten(closing)
	if err := s.archive.Upsert(ctx, closing.Branch, archived, sales); err != nil {
		s.logger.WithFields(logrus.Fields{
			"closing_id": closing.ClosingID,
			"branch":     closing.Branch,
		}).WithError(err).Error("sheet upsert failed, draft preserved")
		return nil, apperror.ErrSheetUnavailable
	}

	now := time.Now()
	closing.Status = enum.ClosingStatusSubmitted
	closing.SubmittedAt = &now
	if err := s.closingRepo.Update(ctx, closing); err != nil {
		return nil, err
	}

	// Receipt and email are best-effort; the closing is already
	// archived and a failure here must not roll it back.
	if s.printerSvc != nil {
		if err := s.printerSvc.PrintClosing(s.buildReceipt(closing, rec)); err != nil {
			s.logger.WithError(err).Warn("receipt print failed")
		}
	}
	s.sendSummary(closing, rec)

	return closing, nil
}

// RetrieveArchived fetches a submitted closing back from the remote
// sheet by its closing id.
func (s *ClosingService) RetrieveArchived(ctx context.Context, closingID string) (*entity.ArchivedClosing, error) {
	branch, _, err := closingid.Parse(closingID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Malformed closing id")
	}

	archived, err := s.archive.Get(ctx, branch, closingID)
	if err != nil {
		s.logger.WithField("closing_id", closingID).WithError(err).Error("archive read failed")
		return nil, apperror.ErrSheetUnavailable
	}
	if archived == nil {
		return nil, apperror.NewNotFoundError("Closing")
	}
	return archived, nil
}

// flatten maps a validated draft onto its remote representation.
func (s *ClosingService) flatten(closing *entity.Closing) (*entity.ArchivedClosing, *entity.SalesRecord) {
	date := closing.ClosingDate.Format(rowDate)

	archived := &entity.ArchivedClosing{
		ClosingID: closing.ClosingID,
		Branch:    closing.Branch,
		Date:      date,
		CCTips:    closing.CCTips,
	}
	for _, e := range closing.Expenses {
		archived.Expenses = append(archived.Expenses, entity.ArchivedExpense{
			Date:        date,
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
			HasBill:     e.HasBill,
		})
	}

	sales := &entity.SalesRecord{
		ClosingID: closing.ClosingID,
		Date:      date,
		Cash:      closing.CashSale,
		Card:      closing.CardSale,
		Foodpanda: closing.DeliverySale,
		Gross:     closing.GrossSale,
	}
	return archived, sales
}

func (s *ClosingService) buildReceipt(closing *entity.Closing, rec entity.Reconciliation) *entity.ClosingReceipt {
	receipt := &entity.ClosingReceipt{
		Branch:       closing.Branch.DisplayName(),
		Date:         closing.ClosingDate.Format("02 Jan 2006"),
		ClosingID:    closing.ClosingID,
		GrossSale:    closing.GrossSale,
		CashSale:     closing.CashSale,
		CardSale:     closing.CardSale,
		DeliverySale: closing.DeliverySale,
		CCTips:       closing.CCTips,
		ExpectedCash: rec.ExpectedCash,
	}
	for _, e := range closing.Expenses {
		receipt.Expenses = append(receipt.Expenses, entity.ReceiptExpense{
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	return receipt
}

func (s *ClosingService) sendSummary(closing *entity.Closing, rec entity.Reconciliation) {
	if s.emailSvc == nil || s.ownerEmail == "" {
		return
	}

	summary := &email.ClosingSummary{
		Branch:       closing.Branch.DisplayName(),
		Date:         closing.ClosingDate.Format("02 Jan 2006"),
		ClosingID:    closing.ClosingID,
		GrossSale:    money.Format(closing.GrossSale),
		CashSale:     money.Format(closing.CashSale),
		CardSale:     money.Format(closing.CardSale),
		DeliverySale: money.Format(closing.DeliverySale),
		ExpenseCount: len(closing.Expenses),
		ExpenseTotal: money.Format(closing.ExpensesTotal()),
		CCTips:       money.Format(closing.CCTips),
		ExpectedCash: money.Format(rec.ExpectedCash),
	}
	if err := s.emailSvc.SendClosingSummary(s.ownerEmail, summary); err != nil {
		s.logger.WithError(err).Warn("closing summary email failed")
	}
}
