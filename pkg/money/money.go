package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrTooPrecise = errors.New("amount has sub-cent precision")
	ErrMalformed  = errors.New("malformed amount")
)

// Amount is a monetary value in integer minor units (cents). All arithmetic
// on amounts is exact: equality, summation and comparison never go through
// binary floating point.
type Amount int64

// minorDigits is the number of decimal places in the minor unit.
const minorDigits = 2

// FromDecimal converts a decimal value in major units (e.g. "12.34") to an
// Amount. Values carrying more precision than the minor unit are rejected
// rather than rounded.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	scaled := d.Shift(minorDigits)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrTooPrecise, d.String())
	}
	return Amount(scaled.IntPart()), nil
}

// Parse converts a fixed-point decimal string to an Amount.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return FromDecimal(d)
}

// Decimal returns the amount as an exact decimal in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -minorDigits)
}

// String formats the amount as a fixed-point decimal, e.g. "12.34".
func (a Amount) String() string {
	return a.Decimal().StringFixed(minorDigits)
}

// MarshalJSON encodes the amount as a fixed-point decimal string so the wire
// format never loses precision to floating-point JSON numbers.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a string ("12.34") or a bare JSON number.
// Numbers are normalized through an exact decimal parse of the raw token, so
// a value like 0.1 arrives as exactly 10 cents.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
