package entity

import "github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"

// ArchivedExpense is one expense row read back from the remote sheet.
type ArchivedExpense struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	HasBill     bool   `json:"has_bill"`
}

// ArchivedClosing is a submitted closing reconstructed from the remote
// sheet: the expense rows under one closing id, with the synthetic CC
// tip row folded back into CCTips and summary rows dropped.
type ArchivedClosing struct {
	ClosingID string            `json:"closing_id"`
	Branch    enum.Branch       `json:"branch"`
	Date      string            `json:"date"`
	Expenses  []ArchivedExpense `json:"expenses"`
	CCTips    int64             `json:"cc_tips"`
}

// ExpensesTotal sums the archived expense amounts.
func (a *ArchivedClosing) ExpensesTotal() int64 {
	var total int64
	for _, e := range a.Expenses {
		total += e.Amount
	}
	return total
}

// SalesRecord is one row of the per-branch Sales worksheet: the revenue
// breakdown for a single closing.
type SalesRecord struct {
	ClosingID string `json:"closing_id"`
	Date      string `json:"date"`
	Cash      int64  `json:"cash"`
	Card      int64  `json:"card"`
	Foodpanda int64  `json:"foodpanda"`
	Gross     int64  `json:"gross"`
}
