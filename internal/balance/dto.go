package balance

import "github.com/splitledger/splitledger/pkg/money"

// EntryResponse is one pairwise debt within a group: from_user owes to_user
type EntryResponse struct {
	FromUser int64        `json:"from_user"`
	ToUser   int64        `json:"to_user"`
	Amount   money.Amount `json:"amount"`
}

// NetBalanceResponse is one user's net position: positive means they are
// owed money, negative means they owe. Settled-up members appear with 0.
type NetBalanceResponse struct {
	UserID int64        `json:"user_id"`
	Name   string       `json:"name,omitempty"`
	Net    money.Amount `json:"net"`
}

// OwedEntry is a debt of the queried user towards another user
type OwedEntry struct {
	ToUser int64        `json:"to_user"`
	Amount money.Amount `json:"amount"`
}

// DueEntry is a debt another user has towards the queried user
type DueEntry struct {
	FromUser int64        `json:"from_user"`
	Amount   money.Amount `json:"amount"`
}

// UserBalancesResponse lists who a user owes and who owes them
type UserBalancesResponse struct {
	UserID int64       `json:"user_id"`
	Owed   []OwedEntry `json:"owed"`
	Due    []DueEntry  `json:"due"`
}

// UserTotalsResponse sums a user's debts in both directions across all groups
type UserTotalsResponse struct {
	UserID    int64        `json:"user_id"`
	TotalOwed money.Amount `json:"total_owed"`
	TotalDue  money.Amount `json:"total_due"`
}
