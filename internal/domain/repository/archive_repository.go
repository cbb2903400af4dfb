package repository

import (
	"context"
	"time"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
)

// Row is one spreadsheet row, column 0 first. Every persisted closing
// row carries the closing id in column 0; it is the only join key.
type Row []string

// RowStore is the narrow surface of the remote spreadsheet API:
// read everything, append at the end, delete by position. Positions are
// zero-based over data rows (the header row is the store's concern).
type RowStore interface {
	ReadAll(ctx context.Context, spreadsheetID, worksheet string) ([]Row, error)
	Append(ctx context.Context, spreadsheetID, worksheet string, rows []Row) error
	// DeleteRows removes the rows at the given positions. Positions
	// must be sorted in descending order: deleting a row shifts every
	// row after it, so processing highest-first keeps the remaining
	// positions valid.
	DeleteRows(ctx context.Context, spreadsheetID, worksheet string, positions []int) error
}

// ClosingArchive is the write-through store for submitted closings.
// Upsert has replace semantics: whatever rows the sheet holds for the
// closing id are dropped and the supplied state is appended, so any
// number of prior submissions collapses to one.
type ClosingArchive interface {
	Upsert(ctx context.Context, branch enum.Branch, closing *entity.ArchivedClosing, sales *entity.SalesRecord) error
	Get(ctx context.Context, branch enum.Branch, closingID string) (*entity.ArchivedClosing, error)
	SalesByMonth(ctx context.Context, branch enum.Branch, year int, month time.Month) ([]entity.SalesRecord, error)
}
