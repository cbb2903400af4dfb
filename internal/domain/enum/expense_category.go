package enum

import "strings"

// DefaultExpenseCategories is the enumerated set offered by the closing
// form. Category stays free text in the data model — operators can type
// their own under "Other" — but the defaults cover the daily cash-outs.
var DefaultExpenseCategories = []string{
	"Staff",
	"Fuel",
	"Groceries",
	"Maintenance",
	"Utilities",
	"Delivery",
	"Other",
}

// CategoryPlaceholder is the select-box sentinel; an expense with this
// category is treated as having none.
const CategoryPlaceholder = "Select Category"

// Synthetic categories written to the remote sheet alongside real
// expenses. Retrieval filters these out when rebuilding a ledger.
const (
	CategoryCCTip        = "CC TIP"
	CategorySalesSummary = "SALES_SUMMARY"
)

// IsSyntheticCategory reports whether a persisted row category is one of
// the synthetic markers rather than an operator-entered expense.
func IsSyntheticCategory(category string) bool {
	switch strings.TrimSpace(category) {
	case CategoryCCTip, CategorySalesSummary:
		return true
	}
	return false
}

// IsCategorySet reports whether the operator actually picked a category.
func IsCategorySet(category string) bool {
	c := strings.TrimSpace(category)
	return c != "" && !strings.EqualFold(c, CategoryPlaceholder)
}
