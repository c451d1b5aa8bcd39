package balance

import (
	"sort"

	"github.com/splitledger/splitledger/internal/ledger"
)

// userView filters pairwise entries down to one user's perspective: the
// debts they hold and the debts held against them.
func userView(entries []ledger.BalanceEntry, userID int64) *UserBalancesResponse {
	resp := &UserBalancesResponse{
		UserID: userID,
		Owed:   []OwedEntry{},
		Due:    []DueEntry{},
	}
	for _, e := range entries {
		switch userID {
		case e.FromUser:
			resp.Owed = append(resp.Owed, OwedEntry{ToUser: e.ToUser, Amount: e.Amount})
		case e.ToUser:
			resp.Due = append(resp.Due, DueEntry{FromUser: e.FromUser, Amount: e.Amount})
		}
	}
	return resp
}

// totalsView sums each user's pairwise debts in both directions.
func totalsView(entries []ledger.BalanceEntry) []*UserTotalsResponse {
	totals := make(map[int64]*UserTotalsResponse)
	get := func(userID int64) *UserTotalsResponse {
		if t, ok := totals[userID]; ok {
			return t
		}
		t := &UserTotalsResponse{UserID: userID}
		totals[userID] = t
		return t
	}

	for _, e := range entries {
		get(e.FromUser).TotalOwed += e.Amount
		get(e.ToUser).TotalDue += e.Amount
	}

	results := make([]*UserTotalsResponse, 0, len(totals))
	for _, t := range totals {
		results = append(results, t)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].UserID < results[j].UserID })
	return results
}
