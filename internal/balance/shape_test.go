package balance

import (
	"testing"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/pkg/money"
)

func TestUserView(t *testing.T) {
	entries := []ledger.BalanceEntry{
		{FromUser: 1, ToUser: 2, Amount: money.Amount(500)},
		{FromUser: 3, ToUser: 1, Amount: money.Amount(250)},
		{FromUser: 3, ToUser: 2, Amount: money.Amount(100)},
	}

	tests := []struct {
		name     string
		userID   int64
		wantOwed []OwedEntry
		wantDue  []DueEntry
	}{
		{
			name:     "user both owes and is owed",
			userID:   1,
			wantOwed: []OwedEntry{{ToUser: 2, Amount: 500}},
			wantDue:  []DueEntry{{FromUser: 3, Amount: 250}},
		},
		{
			name:     "user only owed by others",
			userID:   2,
			wantOwed: []OwedEntry{},
			wantDue:  []DueEntry{{FromUser: 1, Amount: 500}, {FromUser: 3, Amount: 100}},
		},
		{
			name:     "user only owes",
			userID:   3,
			wantOwed: []OwedEntry{{ToUser: 1, Amount: 250}, {ToUser: 2, Amount: 100}},
			wantDue:  []DueEntry{},
		},
		{
			name:     "user with no activity",
			userID:   9,
			wantOwed: []OwedEntry{},
			wantDue:  []DueEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := userView(entries, tt.userID)
			if got.UserID != tt.userID {
				t.Errorf("UserID = %d, want %d", got.UserID, tt.userID)
			}
			if len(got.Owed) != len(tt.wantOwed) {
				t.Fatalf("len(Owed) = %d, want %d", len(got.Owed), len(tt.wantOwed))
			}
			for i, w := range tt.wantOwed {
				if got.Owed[i] != w {
					t.Errorf("Owed[%d] = %+v, want %+v", i, got.Owed[i], w)
				}
			}
			if len(got.Due) != len(tt.wantDue) {
				t.Fatalf("len(Due) = %d, want %d", len(got.Due), len(tt.wantDue))
			}
			for i, w := range tt.wantDue {
				if got.Due[i] != w {
					t.Errorf("Due[%d] = %+v, want %+v", i, got.Due[i], w)
				}
			}
		})
	}
}

func TestTotalsView(t *testing.T) {
	entries := []ledger.BalanceEntry{
		{FromUser: 1, ToUser: 2, Amount: money.Amount(500)},
		{FromUser: 3, ToUser: 1, Amount: money.Amount(250)},
	}

	got := totalsView(entries)
	if len(got) != 3 {
		t.Fatalf("len(totals) = %d, want 3", len(got))
	}

	want := map[int64]struct {
		owed money.Amount
		due  money.Amount
	}{
		1: {owed: 500, due: 250},
		2: {owed: 0, due: 500},
		3: {owed: 250, due: 0},
	}

	var prev int64 = -1
	for _, tr := range got {
		if tr.UserID < prev {
			t.Errorf("totals not sorted by user id: %d after %d", tr.UserID, prev)
		}
		prev = tr.UserID

		w, ok := want[tr.UserID]
		if !ok {
			t.Fatalf("unexpected user %d in totals", tr.UserID)
		}
		if tr.TotalOwed != w.owed {
			t.Errorf("user %d TotalOwed = %v, want %v", tr.UserID, tr.TotalOwed, w.owed)
		}
		if tr.TotalDue != w.due {
			t.Errorf("user %d TotalDue = %v, want %v", tr.UserID, tr.TotalDue, w.due)
		}
	}
}

func TestTotalsViewEmpty(t *testing.T) {
	got := totalsView(nil)
	if len(got) != 0 {
		t.Errorf("totalsView(nil) returned %d entries, want 0", len(got))
	}
}
