package ledger

import (
	"errors"
	"testing"

	"github.com/splitledger/splitledger/pkg/money"
)

func TestAggregateFromExpenses(t *testing.T) {
	expenses := []Expense{
		{
			ID:     1,
			PaidBy: 1,
			Amount: 300,
			Splits: []Split{
				{UserID: 2, AmountOwed: 100},
				{UserID: 3, AmountOwed: 100},
				{UserID: 1, AmountOwed: 100},
			},
		},
	}

	net, err := AggregateFromExpenses(expenses)
	if err != nil {
		t.Fatalf("AggregateFromExpenses returned error: %v", err)
	}

	want := map[int64]money.Amount{1: 200, 2: -100, 3: -100}
	if len(net) != len(want) {
		t.Fatalf("net has %d users, want %d", len(net), len(want))
	}
	var sum money.Amount
	for id, amount := range net {
		if amount != want[id] {
			t.Errorf("net[%d] = %d, want %d", id, amount, want[id])
		}
		sum += amount
	}
	if sum != 0 {
		t.Errorf("net balances sum to %d, want 0", sum)
	}
}

func TestAggregateFromExpensesSettledUserStaysPresent(t *testing.T) {
	// User 2 pays back exactly what they owe via a mirrored expense, so
	// their net is zero. They must still appear in the map.
	expenses := []Expense{
		{PaidBy: 1, Amount: 100, Splits: []Split{{UserID: 2, AmountOwed: 100}}},
		{PaidBy: 2, Amount: 100, Splits: []Split{{UserID: 1, AmountOwed: 100}}},
	}

	net, err := AggregateFromExpenses(expenses)
	if err != nil {
		t.Fatalf("AggregateFromExpenses returned error: %v", err)
	}
	for _, id := range []int64{1, 2} {
		amount, ok := net[id]
		if !ok {
			t.Fatalf("user %d missing from net map", id)
		}
		if amount != 0 {
			t.Errorf("net[%d] = %d, want 0", id, amount)
		}
	}
}

func TestAggregateFromExpensesIdempotent(t *testing.T) {
	expenses := []Expense{
		{PaidBy: 1, Amount: 900, Splits: []Split{
			{UserID: 1, AmountOwed: 300},
			{UserID: 2, AmountOwed: 300},
			{UserID: 3, AmountOwed: 300},
		}},
		{PaidBy: 3, Amount: 50, Splits: []Split{
			{UserID: 2, AmountOwed: 25},
			{UserID: 3, AmountOwed: 25},
		}},
	}

	first, err := AggregateFromExpenses(expenses)
	if err != nil {
		t.Fatalf("AggregateFromExpenses returned error: %v", err)
	}
	second, err := AggregateFromExpenses(expenses)
	if err != nil {
		t.Fatalf("AggregateFromExpenses returned error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated aggregation changed user count: %d vs %d", len(first), len(second))
	}
	for id, amount := range first {
		if second[id] != amount {
			t.Errorf("net[%d] differs between runs: %d vs %d", id, amount, second[id])
		}
	}
}

func TestAggregateFromExpensesDetectsCorruption(t *testing.T) {
	// Splits leak 10 cents against the expense amount.
	expenses := []Expense{
		{PaidBy: 1, Amount: 300, Splits: []Split{
			{UserID: 2, AmountOwed: 145},
			{UserID: 3, AmountOwed: 145},
		}},
	}

	net, err := AggregateFromExpenses(expenses)
	var cerr *ConsistencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("AggregateFromExpenses error = %v, want *ConsistencyError", err)
	}
	if cerr.Residual != 10 {
		t.Errorf("residual = %d, want 10", cerr.Residual)
	}
	if net != nil {
		t.Errorf("expected no partial result on corrupted input, got %v", net)
	}
}

func TestAggregateFromBalanceEntries(t *testing.T) {
	entries := []BalanceEntry{
		{FromUser: 2, ToUser: 1, Amount: 100},
		{FromUser: 3, ToUser: 1, Amount: 100},
		{FromUser: 1, ToUser: 3, Amount: 40},
	}

	net, err := AggregateFromBalanceEntries(entries)
	if err != nil {
		t.Fatalf("AggregateFromBalanceEntries returned error: %v", err)
	}

	want := map[int64]money.Amount{1: 160, 2: -100, 3: -60}
	for id, amount := range want {
		if net[id] != amount {
			t.Errorf("net[%d] = %d, want %d", id, net[id], amount)
		}
	}
}

func TestPairwiseFromExpenses(t *testing.T) {
	expenses := []Expense{
		{PaidBy: 1, Amount: 300, Splits: []Split{
			{UserID: 1, AmountOwed: 100},
			{UserID: 2, AmountOwed: 100},
			{UserID: 3, AmountOwed: 100},
		}},
		{PaidBy: 1, Amount: 60, Splits: []Split{
			{UserID: 2, AmountOwed: 60},
		}},
		{PaidBy: 2, Amount: 80, Splits: []Split{
			{UserID: 3, AmountOwed: 80},
		}},
	}

	entries := PairwiseFromExpenses(expenses)
	want := []BalanceEntry{
		{FromUser: 2, ToUser: 1, Amount: 160},
		{FromUser: 3, ToUser: 1, Amount: 100},
		{FromUser: 3, ToUser: 2, Amount: 80},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}
