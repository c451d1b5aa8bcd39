package ledger

import (
	"sort"

	"github.com/splitledger/splitledger/pkg/money"
)

// AggregateFromExpenses folds resolved expenses into a net balance per user:
// the payer is credited the full expense amount, every split user is debited
// their share. Positive means the user is owed money, negative means they
// owe. Addition is commutative, so the result does not depend on the order
// of the input and re-aggregating the same snapshot is idempotent.
//
// Users whose credits and debits cancel out stay in the map with value 0, so
// callers can render "settled up" without an existence check. If the grand
// total is non-zero the input was not a closed, self-consistent expense set
// and a ConsistencyError is returned instead of a partial result.
func AggregateFromExpenses(expenses []Expense) (map[int64]money.Amount, error) {
	net := make(map[int64]money.Amount)
	for _, e := range expenses {
		net[e.PaidBy] += e.Amount
		for _, s := range e.Splits {
			net[s.UserID] -= s.AmountOwed
		}
	}
	if err := checkConservation(net); err != nil {
		return nil, err
	}
	return net, nil
}

// AggregateFromBalanceEntries folds pairwise debts into the same net map:
// each entry debits from_user and credits to_user. Used when the upstream
// store already nets debts pairwise.
func AggregateFromBalanceEntries(entries []BalanceEntry) (map[int64]money.Amount, error) {
	net := make(map[int64]money.Amount)
	for _, e := range entries {
		net[e.FromUser] -= e.Amount
		net[e.ToUser] += e.Amount
	}
	if err := checkConservation(net); err != nil {
		return nil, err
	}
	return net, nil
}

// PairwiseFromExpenses accumulates who owes whom directly: for every split
// not held by the payer, the split user owes the payer that share. Entries
// are returned sorted by (from_user, to_user) so the output is stable.
func PairwiseFromExpenses(expenses []Expense) []BalanceEntry {
	owed := make(map[int64]map[int64]money.Amount)
	for _, e := range expenses {
		for _, s := range e.Splits {
			if s.UserID == e.PaidBy {
				continue
			}
			if owed[s.UserID] == nil {
				owed[s.UserID] = make(map[int64]money.Amount)
			}
			owed[s.UserID][e.PaidBy] += s.AmountOwed
		}
	}

	var entries []BalanceEntry
	for from, creditors := range owed {
		for to, amount := range creditors {
			if amount > 0 {
				entries = append(entries, BalanceEntry{FromUser: from, ToUser: to, Amount: amount})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].FromUser != entries[j].FromUser {
			return entries[i].FromUser < entries[j].FromUser
		}
		return entries[i].ToUser < entries[j].ToUser
	})
	return entries
}

func checkConservation(net map[int64]money.Amount) error {
	var sum money.Amount
	for _, amount := range net {
		sum += amount
	}
	if sum != 0 {
		return &ConsistencyError{Residual: sum}
	}
	return nil
}
