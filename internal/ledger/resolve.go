package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// ResolveSplits turns a split specification into a concrete, validated list
// of per-member shares that sum exactly to total. The member list given is
// authoritative: every member receives a share, and for percentage splits
// every member must have a percentage entry.
//
// The result is deterministic regardless of the order of memberIDs: shares
// are assigned in ascending user-id order, and any remainder left by
// discrete minor units is distributed one unit at a time in that same order.
func ResolveSplits(total money.Amount, memberIDs []int64, splitType SplitType, percentages map[int64]decimal.Decimal) ([]Split, error) {
	if len(memberIDs) == 0 {
		return nil, validationf("at least one member is required")
	}
	if total <= 0 {
		return nil, validationf("amount must be positive, got %s", total)
	}

	members := slices.Clone(memberIDs)
	slices.Sort(members)
	for i := 1; i < len(members); i++ {
		if members[i] == members[i-1] {
			return nil, validationf("duplicate member id %d", members[i])
		}
	}

	switch splitType {
	case SplitTypeEqual:
		return resolveEqual(total, members), nil
	case SplitTypePercentage:
		return resolvePercentage(total, members, percentages)
	default:
		return nil, validationf("unknown split type %q", splitType)
	}
}

// resolveEqual divides total into len(members) shares: the floor share for
// everyone, with the remainder going one minor unit at a time to the lowest
// user ids. sum(shares) == total holds exactly.
func resolveEqual(total money.Amount, members []int64) []Split {
	n := money.Amount(len(members))
	base := total / n
	remainder := total % n

	splits := make([]Split, len(members))
	for i, id := range members {
		share := base
		if money.Amount(i) < remainder {
			share++
		}
		splits[i] = Split{UserID: id, AmountOwed: share}
	}
	return splits
}

// resolvePercentage computes each member's share as total*percentage/100
// rounded half-to-even to the minor unit, then corrects the rounded shares
// against total so conservation is exact. Percentages must cover every
// member, reference only members, and sum to exactly 100.
func resolvePercentage(total money.Amount, members []int64, percentages map[int64]decimal.Decimal) ([]Split, error) {
	if len(percentages) != len(members) {
		for id := range percentages {
			if !slices.Contains(members, id) {
				return nil, validationf("percentage entry for non-member %d", id)
			}
		}
	}

	sum := decimal.Zero
	for _, id := range members {
		pct, ok := percentages[id]
		if !ok {
			return nil, validationf("missing percentage for member %d", id)
		}
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return nil, validationf("percentage for member %d out of range: %s", id, pct)
		}
		sum = sum.Add(pct)
	}
	if !sum.Equal(hundred) {
		return nil, validationf("percentages sum to %s, must be exactly 100", sum)
	}

	splits := make([]Split, len(members))
	var allocated money.Amount
	for i, id := range members {
		// Shift(-2) divides by 100 exactly; RoundBank is half-to-even.
		raw := decimal.NewFromInt(int64(total)).Mul(percentages[id]).Shift(-2)
		share := money.Amount(raw.RoundBank(0).IntPart())
		splits[i] = Split{UserID: id, AmountOwed: share}
		allocated += share
	}

	// Force exact conservation: push the rounding residue onto members one
	// minor unit at a time, lowest user id first.
	for i := 0; allocated != total; i = (i + 1) % len(splits) {
		if allocated < total {
			splits[i].AmountOwed++
			allocated++
		} else {
			splits[i].AmountOwed--
			allocated--
		}
	}

	return splits, nil
}
