package expense

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/group"
	"github.com/splitledger/splitledger/internal/ledger"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrPayerNotMember  = errors.New("payer is not a member of the group")
)

// Service handles expense business logic
type Service struct {
	repo      *Repository
	groupRepo *group.Repository
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groupRepo *group.Repository) *Service {
	return &Service{
		repo:      repo,
		groupRepo: groupRepo,
	}
}

// Create validates the expense against its group, resolves the splits
// through the ledger engine and persists everything atomically. The group's
// member list is authoritative: an equal split covers every member, and a
// percentage split must specify every member exactly.
func (s *Service) Create(ctx context.Context, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	g, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	memberIDs, err := s.groupRepo.MemberIDs(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(memberIDs, req.PaidBy) {
		return nil, fmt.Errorf("%w: user %d", ErrPayerNotMember, req.PaidBy)
	}

	splitType := ledger.SplitType(req.SplitType)
	var percentages map[int64]decimal.Decimal
	if splitType == ledger.SplitTypePercentage {
		percentages = make(map[int64]decimal.Decimal, len(req.Splits))
		for _, spec := range req.Splits {
			if _, dup := percentages[spec.UserID]; dup {
				return nil, &ledger.ValidationError{Reason: fmt.Sprintf("duplicate split entry for user %d", spec.UserID)}
			}
			percentages[spec.UserID] = spec.Percentage
		}
	} else if len(req.Splits) > 0 {
		return nil, &ledger.ValidationError{Reason: "equal split must not carry split entries"}
	}

	resolved, err := ledger.ResolveSplits(req.Amount, memberIDs, splitType, percentages)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateWithSplits(ctx, req, resolved, percentages)
}

// GetByID retrieves an expense with its splits
func (s *Service) GetByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByGroupID retrieves expenses for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}
	if g == nil {
		return nil, 0, ErrGroupNotFound
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Delete removes an expense and its splits
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
