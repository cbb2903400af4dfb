package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	domainRepo "github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
)

type closingRepository struct {
	db *gorm.DB
}

// NewClosingRepository creates a new closing repository
func NewClosingRepository(db *gorm.DB) domainRepo.ClosingRepository {
	return &closingRepository{db: db}
}

func (r *closingRepository) Create(ctx context.Context, closing *entity.Closing) error {
	return r.db.WithContext(ctx).Create(closing).Error
}

func (r *closingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Closing, error) {
	var closing entity.Closing
	err := r.db.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&closing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closing, err
}

func (r *closingRepository) GetByBranchDate(ctx context.Context, branch enum.Branch, date time.Time) (*entity.Closing, error) {
	var closing entity.Closing
	err := r.db.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&closing, "branch = ? AND closing_date = ?", branch, date.Format("2006-01-02")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closing, err
}

func (r *closingRepository) Update(ctx context.Context, closing *entity.Closing) error {
	// Save without the expense association: the ledger mutates only
	// through AppendExpense/DeleteExpenseAt.
	return r.db.WithContext(ctx).Omit("Expenses").Save(closing).Error
}

func (r *closingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ExpenseEntry{}, "closing_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Closing{}, "id = ?", id).Error
	})
}

func (r *closingRepository) List(ctx context.Context, params *domainRepo.ClosingFilterParams) ([]entity.Closing, int64, error) {
	var closings []entity.Closing
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Closing{})

	if params.Branch != nil {
		query = query.Where("branch = ?", *params.Branch)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("closing_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("closing_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("closing_date DESC").
		Find(&closings).Error

	return closings, total, err
}

func (r *closingRepository) AppendExpense(ctx context.Context, entry *entity.ExpenseEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.ExpenseEntry{}).
			Where("closing_id = ?", entry.ClosingID).
			Count(&count).Error; err != nil {
			return err
		}
		entry.Position = int(count)
		return tx.Create(entry).Error
	})
}

func (r *closingRepository) DeleteExpenseAt(ctx context.Context, closingID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entity.ExpenseEntry{}, "closing_id = ? AND position = ?", closingID, position)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Renumber everything after the removed entry; callers work
		// with fresh positions after every change.
		return tx.Model(&entity.ExpenseEntry{}).
			Where("closing_id = ? AND position > ?", closingID, position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}
