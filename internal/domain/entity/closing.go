package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
)

// Closing is the work-in-progress daily closing for one branch on one
// date. It lives in the local database while the operator fills it in;
// on submit its flattened rows replace whatever the remote sheet holds
// for the same closing id. All money fields are whole rupees.
type Closing struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Branch      enum.Branch        `gorm:"size:20;not null;index:idx_branch_date,unique" json:"branch"`
	ClosingDate time.Time          `gorm:"type:date;not null;index:idx_branch_date,unique" json:"closing_date"`
	Status      enum.ClosingStatus `gorm:"default:0" json:"status"`

	GrossSale    int64 `gorm:"default:0" json:"gross_sale"`
	CashSale     int64 `gorm:"default:0" json:"cash_sale"`
	CardSale     int64 `gorm:"default:0" json:"card_sale"`
	DeliverySale int64 `gorm:"default:0" json:"delivery_sale"`
	CCTips       int64 `gorm:"default:0" json:"cc_tips"`

	// ClosingID is set on submit; empty while drafting.
	ClosingID   string     `gorm:"size:30;index" json:"closing_id,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Expenses []ExpenseEntry `gorm:"foreignKey:ClosingID;constraint:OnDelete:CASCADE" json:"expenses"`
}

// BeforeCreate generates a UUID before creating a new closing draft
func (c *Closing) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Closing model
func (Closing) TableName() string {
	return "closings"
}

// ExpenseEntry is one itemized cash expense in a closing session.
// Entries are immutable once added; the only mutation is positional
// removal, which renumbers everything after it.
type ExpenseEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClosingID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position  int       `gorm:"not null" json:"position"`

	Category    string `gorm:"size:100;not null" json:"category"`
	Description string `gorm:"type:text" json:"description"`
	Amount      int64  `gorm:"not null" json:"amount"`
	HasBill     bool   `gorm:"default:false" json:"has_bill"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new expense entry
func (e *ExpenseEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpenseEntry model
func (ExpenseEntry) TableName() string {
	return "expense_entries"
}

// ExpensesTotal sums the ledger. Recomputed on demand; the list is
// bounded by a single day's entries.
func (c *Closing) ExpensesTotal() int64 {
	var total int64
	for _, e := range c.Expenses {
		total += e.Amount
	}
	return total
}

// Reconciliation is the derived state shown to the operator after every
// interaction with the form.
type Reconciliation struct {
	Mismatch     bool  `json:"mismatch"`
	ExpectedCash int64 `json:"expected_cash"`
}

// Reconcile derives expected cash-in-drawer and the sales-breakdown
// mismatch flag.
//
// A zero gross means "not yet entered" and suppresses the mismatch
// signal so a half-filled form shows no false error. Expected cash may
// go negative; that is an alarming but valid business signal, never an
// input error.
func Reconcile(cash, card, delivery, gross, expensesTotal, ccTips int64) Reconciliation {
	return Reconciliation{
		Mismatch:     gross > 0 && cash+card+delivery != gross,
		ExpectedCash: cash - expensesTotal - ccTips,
	}
}

// Reconciliation recomputes the derived state from the closing's
// current figures and ledger.
func (c *Closing) Reconciliation() Reconciliation {
	return Reconcile(c.CashSale, c.CardSale, c.DeliverySale, c.GrossSale, c.ExpensesTotal(), c.CCTips)
}
