package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ZaighumCheema47/klap-closing-app/internal/application/service"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
	"github.com/ZaighumCheema47/klap-closing-app/internal/presentation/http/dto/request"
	"github.com/ZaighumCheema47/klap-closing-app/internal/presentation/http/dto/response"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/pagination"
)

// ClosingHandler handles daily closing HTTP requests
type ClosingHandler struct {
	closingService *service.ClosingService
}

// NewClosingHandler creates a new closing handler
func NewClosingHandler(closingService *service.ClosingService) *ClosingHandler {
	return &ClosingHandler{closingService: closingService}
}

// StartClosing opens or resumes the closing session for a branch and date
// @Summary Start closing
// @Tags closings
// @Accept json
// @Produce json
// @Param request body request.StartClosingRequest true "Branch and date"
// @Success 201 {object} response.APIResponse
// @Router /closings [post]
func (h *ClosingHandler) StartClosing(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StartClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := enum.ParseBranch(req.Branch)
	if err != nil {
		response.BadRequest(c, "Unknown branch")
		return
	}

	// Staff are pinned to their home branch; managers can close any.
	if !IsManager(c) {
		if home := GetUserBranch(c); home != "" && home != branch.String() {
			response.Forbidden(c, "You can only run closings for your own branch")
			return
		}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Date must be YYYY-MM-DD")
		return
	}

	closing, err := h.closingService.StartClosing(c.Request.Context(), *userID, &service.StartClosingInput{
		Branch:      branch,
		ClosingDate: date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Closing session ready", response.NewClosingResponse(closing))
}

// GetClosing retrieves a closing draft
// @Summary Get closing
// @Tags closings
// @Produce json
// @Param id path string true "Closing ID"
// @Success 200 {object} response.APIResponse
// @Router /closings/{id} [get]
func (h *ClosingHandler) GetClosing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid closing ID")
		return
	}

	closing, err := h.closingService.GetClosing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closing retrieved", response.NewClosingResponse(closing))
}

// ListClosings lists closing drafts and submissions
// @Summary List closings
// @Tags closings
// @Produce json
// @Param branch query string false "Branch filter"
// @Param status query string false "Status filter (draft|submitted)"
// @Success 200 {object} response.APIResponse
// @Router /closings [get]
func (h *ClosingHandler) ListClosings(c *gin.Context) {
	params := &repository.ClosingFilterParams{
		Pagination: parsePagination(c),
	}

	if b := c.Query("branch"); b != "" {
		branch, err := enum.ParseBranch(b)
		if err != nil {
			response.BadRequest(c, "Unknown branch")
			return
		}
		params.Branch = &branch
	}
	if s := c.Query("status"); s != "" {
		var status enum.ClosingStatus
		switch s {
		case "draft":
			status = enum.ClosingStatusDraft
		case "submitted":
			status = enum.ClosingStatusSubmitted
		default:
			response.BadRequest(c, "Status must be draft or submitted")
			return
		}
		params.Status = &status
	}
	if d := c.Query("start_date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			response.BadRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if d := c.Query("end_date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			response.BadRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		params.EndDate = &t
	}

	closings, total, err := h.closingService.ListClosings(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(
		response.NewClosingResponses(closings),
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total),
	)
	response.SuccessWithPagination(c, 200, "Closings retrieved", result)
}

// UpdateSales stores the operator-entered sales figures
// @Summary Update sales figures
// @Tags closings
// @Accept json
// @Produce json
// @Param id path string true "Closing ID"
// @Param request body request.UpdateSalesRequest true "Sales figures"
// @Success 200 {object} response.APIResponse
// @Router /closings/{id}/sales [put]
func (h *ClosingHandler) UpdateSales(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid closing ID")
		return
	}

	var req request.UpdateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	closing, err := h.closingService.UpdateSales(c.Request.Context(), id, &service.SalesInput{
		GrossSale:    req.GrossSale,
		CashSale:     req.CashSale,
		CardSale:     req.CardSale,
		DeliverySale: req.DeliverySale,
		CCTips:       req.CCTips,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales figures updated", response.NewClosingResponse(closing))
}

// AddExpense appends an expense entry to the closing's ledger
// @Summary Add expense
// @Tags closings
// @Accept json
// @Produce json
// @Param id path string true "Closing ID"
// @Param request body request.AddExpenseRequest true "Expense entry"
// @Success 201 {object} response.APIResponse
// @Router /closings/{id}/expenses [post]
func (h *ClosingHandler) AddExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid closing ID")
		return
	}

	var req request.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	closing, err := h.closingService.AddExpense(c.Request.Context(), id, &service.ExpenseInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		HasBill:     req.HasBill,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense added", response.NewClosingResponse(closing))
}

// RemoveExpense deletes the expense at the given position
// @Summary Remove expense
// @Tags closings
// @Produce json
// @Param id path string true "Closing ID"
// @Param index path int true "Expense position"
// @Success 200 {object} response.APIResponse
// @Router /closings/{id}/expenses/{index} [delete]
func (h *ClosingHandler) RemoveExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid closing ID")
		return
	}
	position, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid expense position")
		return
	}

	closing, err := h.closingService.RemoveExpense(c.Request.Context(), id, position)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense removed", response.NewClosingResponse(closing))
}

// SubmitClosing validates and submits the closing to the remote sheet
// @Summary Submit closing
// @Tags closings
// @Produce json
// @Param id path string true "Closing ID"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /closings/{id}/submit [post]
func (h *ClosingHandler) SubmitClosing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid closing ID")
		return
	}

	closing, err := h.closingService.SubmitClosing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closing submitted", response.NewClosingResponse(closing))
}

// GetArchivedClosing retrieves a submitted closing from the remote sheet
// @Summary Get archived closing
// @Tags archive
// @Produce json
// @Param closingID path string true "Closing ID, e.g. CANTT290126CR"
// @Success 200 {object} response.APIResponse
// @Router /archive/closings/{closingID} [get]
func (h *ClosingHandler) GetArchivedClosing(c *gin.Context) {
	archived, err := h.closingService.RetrieveArchived(c.Request.Context(), c.Param("closingID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Archived closing retrieved", gin.H{
		"closing":        archived,
		"expenses_total": archived.ExpensesTotal(),
	})
}

func parsePagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = p
	}
	if pp, err := strconv.Atoi(c.Query("per_page")); err == nil {
		params.PerPage = pp
	}
	params.Validate()
	return params
}
