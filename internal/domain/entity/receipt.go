package entity

// ClosingReceipt holds everything printed on the end-of-day thermal
// receipt. Amounts are whole rupees; formatting happens in the printer
// service.
type ClosingReceipt struct {
	Branch    string `json:"branch"`
	Date      string `json:"date"`
	ClosingID string `json:"closing_id"`

	GrossSale    int64 `json:"gross_sale"`
	CashSale     int64 `json:"cash_sale"`
	CardSale     int64 `json:"card_sale"`
	DeliverySale int64 `json:"delivery_sale"`
	CCTips       int64 `json:"cc_tips"`

	Expenses     []ReceiptExpense `json:"expenses"`
	ExpectedCash int64            `json:"expected_cash"`
}

// ReceiptExpense is one expense line on the receipt.
type ReceiptExpense struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}
