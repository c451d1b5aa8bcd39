package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/group"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/user"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
)

// Service derives balance views from committed expenses. All computation is
// delegated to the ledger engine over an immutable snapshot of expense rows;
// results are cached for a short TTL because recomputation is idempotent.
type Service struct {
	expenseRepo *expense.Repository
	groupRepo   *group.Repository
	userRepo    *user.Repository
	cache       Cache
	logger      *slog.Logger
}

// NewService creates a new balance service
func NewService(expenseRepo *expense.Repository, groupRepo *group.Repository, userRepo *user.Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GroupBalances returns the pairwise debts within a group: who owes whom
// and how much, accumulated over all of the group's expenses.
func (s *Service) GroupBalances(ctx context.Context, groupID int64) ([]EntryResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	key := fmt.Sprintf("balances:group:%d", groupID)
	var cached []EntryResponse
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	expenses, err := s.expenseRepo.LedgerExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	entries := ledger.PairwiseFromExpenses(expenses)
	results := make([]EntryResponse, len(entries))
	for i, e := range entries {
		results[i] = EntryResponse{FromUser: e.FromUser, ToUser: e.ToUser, Amount: e.Amount}
	}

	s.cache.Set(ctx, key, results)
	return results, nil
}

// GroupNetBalances returns each group member's net position. Members with
// no expense activity are included with a net of zero so the caller can
// render "settled up" directly.
func (s *Service) GroupNetBalances(ctx context.Context, groupID int64) ([]NetBalanceResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	key := fmt.Sprintf("balances:group:%d:net", groupID)
	var cached []NetBalanceResponse
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	expenses, err := s.expenseRepo.LedgerExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	net, err := ledger.AggregateFromExpenses(expenses)
	if err != nil {
		// A conservation failure means the stored splits no longer sum to
		// their expense amounts. Surface it; do not serve a partial view.
		s.logger.Error("group balance aggregation failed", "group_id", groupID, "error", err)
		return nil, err
	}

	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	results := make([]NetBalanceResponse, 0, len(members))
	for _, m := range members {
		results = append(results, NetBalanceResponse{
			UserID: m.UserID,
			Name:   m.Name,
			Net:    net[m.UserID],
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].UserID < results[j].UserID })

	s.cache.Set(ctx, key, results)
	return results, nil
}

// UserBalances returns who the given user owes and who owes them, across
// all groups.
func (s *Service) UserBalances(ctx context.Context, userID int64) (*UserBalancesResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	key := fmt.Sprintf("balances:user:%d", userID)
	var cached UserBalancesResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	expenses, err := s.expenseRepo.AllLedgerExpenses(ctx)
	if err != nil {
		return nil, err
	}

	result := userView(ledger.PairwiseFromExpenses(expenses), userID)
	s.cache.Set(ctx, key, result)
	return result, nil
}

// AllUserTotals returns every user's total owed and total due across all
// groups.
func (s *Service) AllUserTotals(ctx context.Context) ([]*UserTotalsResponse, error) {
	key := "balances:totals"
	var cached []*UserTotalsResponse
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	expenses, err := s.expenseRepo.AllLedgerExpenses(ctx)
	if err != nil {
		return nil, err
	}

	results := totalsView(ledger.PairwiseFromExpenses(expenses))
	s.cache.Set(ctx, key, results)
	return results, nil
}
