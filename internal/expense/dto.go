package expense

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/pkg/money"
)

// SplitSpec is one member's entry in a percentage split specification
type SplitSpec struct {
	UserID     int64           `json:"user_id" validate:"required,gt=0"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CreateExpenseRequest represents the request to create an expense. For an
// equal split the group's full member list is used and Splits must be empty;
// for a percentage split every group member needs an entry.
type CreateExpenseRequest struct {
	GroupID     int64        `json:"group_id" validate:"required,gt=0"`
	Description string       `json:"description" validate:"required,min=1,max=255"`
	Amount      money.Amount `json:"amount" validate:"required"`
	PaidBy      int64        `json:"paid_by" validate:"required,gt=0"`
	SplitType   string       `json:"split_type" validate:"required,oneof=equal percentage"`
	Splits      []*SplitSpec `json:"splits,omitempty" validate:"omitempty,dive"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	GroupID     int64            `json:"group_id"`
	PaidBy      int64            `json:"paid_by"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      money.Amount     `json:"amount"`
	SplitType   string           `json:"split_type"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID         int64        `json:"id"`
	ExpenseID  int64        `json:"expense_id"`
	UserID     int64        `json:"user_id"`
	UserName   string       `json:"user_name,omitempty"`
	Percentage *string      `json:"percentage,omitempty"`
	AmountOwed money.Amount `json:"amount_owed"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	resp := &SplitResponse{
		ID:         s.ID,
		ExpenseID:  s.ExpenseID,
		UserID:     s.UserID,
		UserName:   s.UserName,
		AmountOwed: s.AmountOwed,
	}
	if s.Percentage.Valid {
		pct := s.Percentage.Decimal.String()
		resp.Percentage = &pct
	}
	return resp
}
