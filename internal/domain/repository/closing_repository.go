package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/pagination"
)

// ClosingRepository defines the interface for closing draft operations.
// Drafts live in the local database; only submission touches the remote
// sheet.
type ClosingRepository interface {
	Create(ctx context.Context, closing *entity.Closing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Closing, error)
	GetByBranchDate(ctx context.Context, branch enum.Branch, date time.Time) (*entity.Closing, error)
	Update(ctx context.Context, closing *entity.Closing) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ClosingFilterParams) ([]entity.Closing, int64, error)

	// AppendExpense adds an entry at the end of the closing's ledger.
	AppendExpense(ctx context.Context, entry *entity.ExpenseEntry) error
	// DeleteExpenseAt removes the entry at the given position and
	// renumbers the entries after it.
	DeleteExpenseAt(ctx context.Context, closingID uuid.UUID, position int) error
}

// ClosingFilterParams contains filtering parameters for closing queries
type ClosingFilterParams struct {
	Pagination *pagination.PaginationParams
	Branch     *enum.Branch
	Status     *enum.ClosingStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
