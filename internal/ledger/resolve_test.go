package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/pkg/money"
)

func pct(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sumSplits(splits []Split) money.Amount {
	var sum money.Amount
	for _, s := range splits {
		sum += s.AmountOwed
	}
	return sum
}

func TestResolveSplitsEqual(t *testing.T) {
	tests := []struct {
		name    string
		total   money.Amount
		members []int64
		want    map[int64]money.Amount
	}{
		{
			name:    "divides evenly",
			total:   300,
			members: []int64{1, 2, 3},
			want:    map[int64]money.Amount{1: 100, 2: 100, 3: 100},
		},
		{
			name:    "remainder goes to lowest ids",
			total:   100,
			members: []int64{1, 2, 3},
			want:    map[int64]money.Amount{1: 34, 2: 33, 3: 33},
		},
		{
			name:    "two units of remainder",
			total:   1001,
			members: []int64{5, 9, 2},
			want:    map[int64]money.Amount{2: 334, 5: 334, 9: 333},
		},
		{
			name:    "single member takes everything",
			total:   777,
			members: []int64{42},
			want:    map[int64]money.Amount{42: 777},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ResolveSplits(tt.total, tt.members, SplitTypeEqual, nil)
			if err != nil {
				t.Fatalf("ResolveSplits returned error: %v", err)
			}
			if got := sumSplits(splits); got != tt.total {
				t.Errorf("shares sum to %d, want %d", got, tt.total)
			}
			for _, s := range splits {
				if want := tt.want[s.UserID]; s.AmountOwed != want {
					t.Errorf("user %d owes %d, want %d", s.UserID, s.AmountOwed, want)
				}
			}
		})
	}
}

func TestResolveSplitsEqualDeterministic(t *testing.T) {
	orders := [][]int64{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{3, 1, 5, 2, 4},
	}

	first, err := ResolveSplits(1003, orders[0], SplitTypeEqual, nil)
	if err != nil {
		t.Fatalf("ResolveSplits returned error: %v", err)
	}
	for _, order := range orders[1:] {
		splits, err := ResolveSplits(1003, order, SplitTypeEqual, nil)
		if err != nil {
			t.Fatalf("ResolveSplits returned error: %v", err)
		}
		for i := range first {
			if splits[i] != first[i] {
				t.Fatalf("member order %v changed result: got %+v, want %+v", order, splits[i], first[i])
			}
		}
	}
}

func TestResolveSplitsPercentage(t *testing.T) {
	tests := []struct {
		name        string
		total       money.Amount
		members     []int64
		percentages map[int64]decimal.Decimal
		want        map[int64]money.Amount
	}{
		{
			name:    "clean percentages",
			total:   10000,
			members: []int64{1, 2, 3},
			percentages: map[int64]decimal.Decimal{
				1: pct("50"), 2: pct("30"), 3: pct("20"),
			},
			want: map[int64]money.Amount{1: 5000, 2: 3000, 3: 2000},
		},
		{
			name:    "thirds with fractional percentages conserve the total",
			total:   1000,
			members: []int64{1, 2, 3},
			percentages: map[int64]decimal.Decimal{
				1: pct("33.33"), 2: pct("33.33"), 3: pct("33.34"),
			},
			want: map[int64]money.Amount{1: 334, 2: 333, 3: 333},
		},
		{
			name:    "half-to-even rounding with correction",
			total:   10,
			members: []int64{1, 2, 3},
			percentages: map[int64]decimal.Decimal{
				1: pct("25"), 2: pct("25"), 3: pct("50"),
			},
			// 2.5 rounds to 2 for both quarter shares; the missing unit
			// lands on the lowest id.
			want: map[int64]money.Amount{1: 3, 2: 2, 3: 5},
		},
		{
			name:    "zero percentage member is kept at zero",
			total:   500,
			members: []int64{7, 8},
			percentages: map[int64]decimal.Decimal{
				7: pct("100"), 8: pct("0"),
			},
			want: map[int64]money.Amount{7: 500, 8: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ResolveSplits(tt.total, tt.members, SplitTypePercentage, tt.percentages)
			if err != nil {
				t.Fatalf("ResolveSplits returned error: %v", err)
			}
			if got := sumSplits(splits); got != tt.total {
				t.Errorf("shares sum to %d, want %d", got, tt.total)
			}
			for _, s := range splits {
				if want := tt.want[s.UserID]; s.AmountOwed != want {
					t.Errorf("user %d owes %d, want %d", s.UserID, s.AmountOwed, want)
				}
			}
		})
	}
}

func TestResolveSplitsValidation(t *testing.T) {
	tests := []struct {
		name        string
		total       money.Amount
		members     []int64
		splitType   SplitType
		percentages map[int64]decimal.Decimal
	}{
		{
			name:      "empty members",
			total:     100,
			members:   nil,
			splitType: SplitTypeEqual,
		},
		{
			name:      "zero amount",
			total:     0,
			members:   []int64{1, 2},
			splitType: SplitTypeEqual,
		},
		{
			name:      "negative amount",
			total:     -50,
			members:   []int64{1, 2},
			splitType: SplitTypeEqual,
		},
		{
			name:      "duplicate member",
			total:     100,
			members:   []int64{1, 2, 2},
			splitType: SplitTypeEqual,
		},
		{
			name:      "unknown split type",
			total:     100,
			members:   []int64{1, 2},
			splitType: SplitType("shares"),
		},
		{
			name:      "percentages sum below 100",
			total:     100,
			members:   []int64{1, 2, 3},
			splitType: SplitTypePercentage,
			percentages: map[int64]decimal.Decimal{
				1: pct("50"), 2: pct("30"), 3: pct("19"),
			},
		},
		{
			name:      "percentages sum above 100",
			total:     100,
			members:   []int64{1, 2},
			splitType: SplitTypePercentage,
			percentages: map[int64]decimal.Decimal{
				1: pct("60"), 2: pct("41"),
			},
		},
		{
			name:      "missing percentage for a member",
			total:     100,
			members:   []int64{1, 2, 3},
			splitType: SplitTypePercentage,
			percentages: map[int64]decimal.Decimal{
				1: pct("50"), 2: pct("50"),
			},
		},
		{
			name:      "percentage entry for non-member",
			total:     100,
			members:   []int64{1, 2},
			splitType: SplitTypePercentage,
			percentages: map[int64]decimal.Decimal{
				1: pct("50"), 2: pct("40"), 99: pct("10"),
			},
		},
		{
			name:      "negative percentage",
			total:     100,
			members:   []int64{1, 2},
			splitType: SplitTypePercentage,
			percentages: map[int64]decimal.Decimal{
				1: pct("-10"), 2: pct("110"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSplits(tt.total, tt.members, tt.splitType, tt.percentages)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ResolveSplits error = %v, want *ValidationError", err)
			}
		})
	}
}
