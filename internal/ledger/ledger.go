// Package ledger is the computational core of the application: it turns
// split specifications into concrete per-member amounts and folds committed
// expenses into net balances. Every function is pure and stateless; all
// monetary arithmetic happens in exact integer minor units.
package ledger

import (
	"github.com/splitledger/splitledger/pkg/money"
)

// SplitType identifies how an expense is divided among group members.
type SplitType string

const (
	SplitTypeEqual      SplitType = "equal"
	SplitTypePercentage SplitType = "percentage"
)

// Valid reports whether the split type is one the engine knows.
func (t SplitType) Valid() bool {
	return t == SplitTypeEqual || t == SplitTypePercentage
}

// Split is one member's resolved share of an expense.
type Split struct {
	UserID     int64        `json:"user_id"`
	AmountOwed money.Amount `json:"amount_owed"`
}

// Expense is a committed expense as needed for balance aggregation. The
// splits are already resolved; their amounts must sum to Amount.
type Expense struct {
	ID     int64
	PaidBy int64
	Amount money.Amount
	Splits []Split
}

// BalanceEntry is a pairwise debt: FromUser owes ToUser the given amount.
type BalanceEntry struct {
	FromUser int64        `json:"from_user"`
	ToUser   int64        `json:"to_user"`
	Amount   money.Amount `json:"amount"`
}
