package response

import (
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
)

// ClosingResponse is a closing draft together with its derived
// reconciliation state, recomputed on every read.
type ClosingResponse struct {
	*entity.Closing
	ExpensesTotal  int64                 `json:"expenses_total"`
	Reconciliation entity.Reconciliation `json:"reconciliation"`
}

// NewClosingResponse wraps a closing with its reconciliation.
func NewClosingResponse(closing *entity.Closing) *ClosingResponse {
	return &ClosingResponse{
		Closing:        closing,
		ExpensesTotal:  closing.ExpensesTotal(),
		Reconciliation: closing.Reconciliation(),
	}
}

// NewClosingResponses wraps a list of closings.
func NewClosingResponses(closings []entity.Closing) []*ClosingResponse {
	out := make([]*ClosingResponse, 0, len(closings))
	for i := range closings {
		out = append(out, NewClosingResponse(&closings[i]))
	}
	return out
}
