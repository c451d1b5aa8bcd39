package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/pkg/money"
)

// Expense represents an expense in the system
type Expense struct {
	ID          int64            `json:"id"`
	GroupID     int64            `json:"group_id"`
	PaidBy      int64            `json:"paid_by"`
	Description string           `json:"description"`
	Amount      money.Amount     `json:"amount"`
	SplitType   ledger.SplitType `json:"split_type"`
	CreatedAt   time.Time        `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split represents one member's share of an expense. Percentage is only set
// for percentage-split expenses; AmountOwed is always the resolved share.
type Split struct {
	ID         int64               `json:"id"`
	ExpenseID  int64               `json:"expense_id"`
	UserID     int64               `json:"user_id"`
	Percentage decimal.NullDecimal `json:"percentage,omitempty"`
	AmountOwed money.Amount        `json:"amount_owed"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its resolved splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
