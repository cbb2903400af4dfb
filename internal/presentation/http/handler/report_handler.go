package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZaighumCheema47/klap-closing-app/internal/application/service"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/internal/presentation/http/dto/response"
)

// ReportHandler handles monthly sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlySales returns the per-day sales breakdown for a branch and month
// @Summary Monthly sales report
// @Tags reports
// @Produce json
// @Param branch query string true "Branch"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} response.APIResponse
// @Router /reports/monthly [get]
func (h *ReportHandler) MonthlySales(c *gin.Context) {
	branch, year, month, ok := parseReportQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.MonthlySales(c.Request.Context(), branch, year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report generated", report)
}

// ExportMonthlySales downloads the monthly report as an xlsx workbook
// @Summary Export monthly sales report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param branch query string true "Branch"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {file} binary
// @Router /reports/monthly/export [get]
func (h *ReportHandler) ExportMonthlySales(c *gin.Context) {
	branch, year, month, ok := parseReportQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.reportService.ExportMonthlySales(c.Request.Context(), branch, year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func parseReportQuery(c *gin.Context) (enum.Branch, int, time.Month, bool) {
	branch, err := enum.ParseBranch(c.Query("branch"))
	if err != nil {
		response.BadRequest(c, "Unknown branch")
		return "", 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(c, "Invalid year")
		return "", 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, "Month must be between 1 and 12")
		return "", 0, 0, false
	}
	return branch, year, time.Month(month), true
}
