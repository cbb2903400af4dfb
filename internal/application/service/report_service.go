package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/apperror"
)

// ReportService aggregates archived sales into monthly reports.
type ReportService struct {
	archive repository.ClosingArchive
}

// NewReportService creates a new report service
func NewReportService(archive repository.ClosingArchive) *ReportService {
	return &ReportService{archive: archive}
}

// MonthlyReport is the aggregated sales view for one branch and month.
type MonthlyReport struct {
	Branch enum.Branch          `json:"branch"`
	Year   int                  `json:"year"`
	Month  int                  `json:"month"`
	Days   []entity.SalesRecord `json:"days"`

	TotalCash      int64 `json:"total_cash"`
	TotalCard      int64 `json:"total_card"`
	TotalFoodpanda int64 `json:"total_foodpanda"`
	TotalGross     int64 `json:"total_gross"`
}

// MonthlySales builds the per-day sales breakdown and totals for a
// branch and calendar month.
func (s *ReportService) MonthlySales(ctx context.Context, branch enum.Branch, year int, month time.Month) (*MonthlyReport, error) {
	if !branch.Valid() {
		return nil, apperror.NewBadRequestError("Unknown branch")
	}
	if month < time.January || month > time.December {
		return nil, apperror.NewBadRequestError("Month must be between 1 and 12")
	}

	days, err := s.archive.SalesByMonth(ctx, branch, year, month)
	if err != nil {
		return nil, apperror.ErrSheetUnavailable
	}

	report := &MonthlyReport{
		Branch: branch,
		Year:   year,
		Month:  int(month),
		Days:   days,
	}
	for _, d := range days {
		report.TotalCash += d.Cash
		report.TotalCard += d.Card
		report.TotalFoodpanda += d.Foodpanda
		report.TotalGross += d.Gross
	}
	return report, nil
}

// ExportMonthlySales renders the monthly report as an xlsx workbook and
// returns the file bytes with a suggested filename.
func (s *ReportService) ExportMonthlySales(ctx context.Context, branch enum.Branch, year int, month time.Month) (*bytes.Buffer, string, error) {
	report, err := s.MonthlySales(ctx, branch, year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Closing ID", "Date", "Cash", "Card", "Foodpanda", "Gross"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, d := range report.Days {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), d.ClosingID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), d.Date)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), d.Cash)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), d.Card)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), d.Foodpanda)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), d.Gross)
	}

	totalRow := len(report.Days) + 2
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), report.TotalCash)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), report.TotalCard)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), report.TotalFoodpanda)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), report.TotalGross)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sales-%s-%04d-%02d.xlsx", branch, year, month)
	return buf, filename, nil
}
