package ledger

import (
	"fmt"

	"github.com/splitledger/splitledger/pkg/money"
)

// ValidationError reports a malformed or inconsistent split specification:
// a non-member reference, percentages that do not sum to 100, a non-positive
// amount, an empty member set. Callers detect it with errors.As.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConsistencyError reports that an aggregation post-condition failed: the
// net balances of a supposedly closed expense set did not sum to zero. It
// signals corrupted upstream data and is never silently tolerated.
type ConsistencyError struct {
	Residual money.Amount
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("net balances sum to %s, expected zero", e.Residual)
}
