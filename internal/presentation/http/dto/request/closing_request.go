package request

// StartClosingRequest opens (or resumes) the closing session for a
// branch and date.
type StartClosingRequest struct {
	Branch string `json:"branch" binding:"required"`
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
}

// UpdateSalesRequest carries the sales figures as the operator typed
// them. Fields are raw text: "15,000", "Rs 500" and plain numbers are
// all accepted, junk parses to zero.
type UpdateSalesRequest struct {
	GrossSale    string `json:"gross_sale"`
	CashSale     string `json:"cash_sale"`
	CardSale     string `json:"card_sale"`
	DeliverySale string `json:"delivery_sale"`
	CCTips       string `json:"cc_tips"`
}

// AddExpenseRequest appends one expense to the closing's ledger
type AddExpenseRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Amount      string `json:"amount" binding:"required"`
	HasBill     bool   `json:"has_bill"`
}
