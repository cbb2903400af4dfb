package sheets

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ZaighumCheema47/klap-closing-app/internal/config"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
	"github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/cache"
)

const ccTipDescription = "Paid to staff"

type closingArchive struct {
	store  repository.RowStore
	cfg    *config.SheetsConfig
	cache  cache.ClosingCache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewClosingArchive creates the sheet-backed archive of submitted
// closings.
func NewClosingArchive(
	store repository.RowStore,
	cfg *config.SheetsConfig,
	closingCache cache.ClosingCache,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) repository.ClosingArchive {
	return &closingArchive{
		store:  store,
		cfg:    cfg,
		cache:  closingCache,
		ttl:    cacheTTL,
		logger: logger,
	}
}

// Upsert replaces whatever the branch spreadsheet holds for the closing
// id with the supplied state: expense rows (plus the CC tip row when
// tips were paid out) in the closings worksheet, and the revenue
// breakdown in the sales worksheet.
//
// Delete-then-append is not transactional. If the append fails after
// the delete succeeded the sheet is left without the closing until the
// operator retries; the retry re-runs the full replace and converges.
func (a *closingArchive) Upsert(ctx context.Context, branch enum.Branch, closing *entity.ArchivedClosing, sales *entity.SalesRecord) error {
	spreadsheetID, err := a.spreadsheetID(branch)
	if err != nil {
		return err
	}

	if err := a.replaceByID(ctx, spreadsheetID, a.cfg.ClosingsWorksheet, closing.ClosingID, closingRows(closing)); err != nil {
		a.logger.WithFields(logrus.Fields{
			"closing_id": closing.ClosingID,
			"worksheet":  a.cfg.ClosingsWorksheet,
		}).WithError(err).Error("closing upsert failed")
		return err
	}

	if sales != nil {
		if err := a.replaceByID(ctx, spreadsheetID, a.cfg.SalesWorksheet, sales.ClosingID, []repository.Row{salesRow(sales)}); err != nil {
			a.logger.WithFields(logrus.Fields{
				"closing_id": sales.ClosingID,
				"worksheet":  a.cfg.SalesWorksheet,
			}).WithError(err).Error("sales upsert failed")
			return err
		}
	}

	if err := a.cache.Delete(ctx, cacheKey(branch, closing.ClosingID)); err != nil {
		a.logger.WithError(err).Warn("failed to invalidate closing cache")
	}
	return nil
}

// replaceByID implements the upsert protocol against one worksheet:
// read everything, drop every row keyed by the closing id, append the
// new row set.
func (a *closingArchive) replaceByID(ctx context.Context, spreadsheetID, worksheet, closingID string, rows []repository.Row) error {
	existing, err := a.store.ReadAll(ctx, spreadsheetID, worksheet)
	if err != nil {
		return err
	}

	var stale []int
	for pos, row := range existing {
		if len(row) > 0 && row[0] == closingID {
			stale = append(stale, pos)
		}
	}

	if len(stale) > 0 {
		// Highest position first: each deletion shifts every row after
		// it, so descending order keeps the pending positions valid.
		sort.Sort(sort.Reverse(sort.IntSlice(stale)))
		if err := a.store.DeleteRows(ctx, spreadsheetID, worksheet, stale); err != nil {
			return err
		}
	}

	return a.store.Append(ctx, spreadsheetID, worksheet, rows)
}

// Get reconstructs a submitted closing from the branch spreadsheet.
// Synthetic rows are folded back: the CC tip row becomes CCTips, legacy
// summary rows are dropped. Returns nil when no rows carry the id.
func (a *closingArchive) Get(ctx context.Context, branch enum.Branch, closingID string) (*entity.ArchivedClosing, error) {
	if cached, ok, err := a.cache.Get(ctx, cacheKey(branch, closingID)); err == nil && ok {
		return cached, nil
	}

	spreadsheetID, err := a.spreadsheetID(branch)
	if err != nil {
		return nil, err
	}

	rows, err := a.store.ReadAll(ctx, spreadsheetID, a.cfg.ClosingsWorksheet)
	if err != nil {
		return nil, err
	}

	closing := &entity.ArchivedClosing{
		ClosingID: closingID,
		Branch:    branch,
	}
	found := false
	for _, row := range rows {
		if len(row) < 5 || row[0] != closingID {
			continue
		}
		found = true
		closing.Date = row[1]

		category := strings.TrimSpace(row[2])
		amount, _ := strconv.ParseInt(row[4], 10, 64)

		if enum.IsSyntheticCategory(category) {
			if category == enum.CategoryCCTip {
				closing.CCTips += amount
			}
			continue
		}

		closing.Expenses = append(closing.Expenses, entity.ArchivedExpense{
			Date:        row[1],
			Category:    category,
			Description: row[3],
			Amount:      amount,
			HasBill:     len(row) > 5 && strings.EqualFold(row[5], "Yes"),
		})
	}

	if !found {
		return nil, nil
	}

	if err := a.cache.Set(ctx, cacheKey(branch, closingID), closing, a.ttl); err != nil {
		a.logger.WithError(err).Warn("failed to cache archived closing")
	}
	return closing, nil
}

// SalesByMonth returns the sales worksheet rows for one calendar month.
func (a *closingArchive) SalesByMonth(ctx context.Context, branch enum.Branch, year int, month time.Month) ([]entity.SalesRecord, error) {
	spreadsheetID, err := a.spreadsheetID(branch)
	if err != nil {
		return nil, err
	}

	rows, err := a.store.ReadAll(ctx, spreadsheetID, a.cfg.SalesWorksheet)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	var records []entity.SalesRecord
	for _, row := range rows {
		if len(row) < 6 || !strings.HasPrefix(row[1], prefix) {
			continue
		}
		records = append(records, parseSalesRow(row))
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records, nil
}

func (a *closingArchive) spreadsheetID(branch enum.Branch) (string, error) {
	id := a.cfg.SpreadsheetID(branch)
	if id == "" {
		return "", fmt.Errorf("sheets: no spreadsheet configured for branch %s", branch)
	}
	return id, nil
}

func cacheKey(branch enum.Branch, closingID string) string {
	return "closing:" + branch.String() + ":" + closingID
}

// closingRows flattens an archived closing into its worksheet rows:
// one row per expense, plus the synthetic CC tip row when tips were
// paid out of the drawer.
func closingRows(c *entity.ArchivedClosing) []repository.Row {
	rows := make([]repository.Row, 0, len(c.Expenses)+1)
	for _, e := range c.Expenses {
		rows = append(rows, repository.Row{
			c.ClosingID, e.Date, e.Category, e.Description,
			strconv.FormatInt(e.Amount, 10), billFlag(e.HasBill),
		})
	}
	if c.CCTips > 0 {
		rows = append(rows, repository.Row{
			c.ClosingID, c.Date, enum.CategoryCCTip, ccTipDescription,
			strconv.FormatInt(c.CCTips, 10), "No",
		})
	}
	return rows
}

func salesRow(s *entity.SalesRecord) repository.Row {
	return repository.Row{
		s.ClosingID, s.Date,
		strconv.FormatInt(s.Cash, 10),
		strconv.FormatInt(s.Card, 10),
		strconv.FormatInt(s.Foodpanda, 10),
		strconv.FormatInt(s.Gross, 10),
	}
}

func parseSalesRow(row repository.Row) entity.SalesRecord {
	parse := func(s string) int64 {
		n, _ := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
		return n
	}
	return entity.SalesRecord{
		ClosingID: row[0],
		Date:      row[1],
		Cash:      parse(row[2]),
		Card:      parse(row[3]),
		Foodpanda: parse(row[4]),
		Gross:     parse(row[5]),
	}
}

func billFlag(hasBill bool) string {
	if hasBill {
		return "Yes"
	}
	return "No"
}
