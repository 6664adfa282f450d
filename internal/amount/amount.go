// Package amount implements four-decimal fixed-point money values.
package amount

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kolkov/csvledger/internal/match"
)

// Places is the number of decimal places an Amount carries.
const Places = 4

// Amount is a quantity in ten-thousandths.
type Amount int64

var (
	errSyntax    = errors.New("not a decimal number")
	errSign      = errors.New("sign not allowed")
	errPrecision = fmt.Errorf("more than %d decimal places", Places)
	errRange     = errors.New("out of range")

	maxAmount = decimal.NewFromInt(math.MaxInt64)
)

// Parse parses an unsigned decimal literal with at most four decimal places.
func Parse(s string) (Amount, error) {
	if !match.IsNumber(s) {
		return 0, errSyntax
	}
	if s[0] == '-' || s[0] == '+' {
		return 0, errSign
	}
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > Places {
		return 0, errPrecision
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errSyntax
	}
	d = d.Shift(Places)
	if d.GreaterThan(maxAmount) {
		return 0, errRange
	}
	return Amount(d.IntPart()), nil
}

// Decimal returns a as a decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Places)
}

// String formats a with exactly four decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Places)
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return -a
}

// Add returns a+b. ok is false if the sum does not fit in an Amount.
func (a Amount) Add(b Amount) (sum Amount, ok bool) {
	sum = a + b
	return sum, (sum > a) == (b > 0)
}

// Sub returns a-b. ok is false if the difference does not fit in an Amount.
func (a Amount) Sub(b Amount) (diff Amount, ok bool) {
	diff = a - b
	return diff, (diff < a) == (b > 0)
}
