// Package valueobject defines value objects for the domain layer.
package valueobject

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// deltaEpsilon is the smallest budget difference that is still displayed.
var deltaEpsilon = decimal.New(1, -9)

// MaxAmount is the largest price or budget accepted, the range of a decimal(12,2) column.
var MaxAmount = decimal.RequireFromString("9999999999.99")

const (
	maxAmountText     = 64
	maxIntegerDigits  = 10
	maxFractionDigits = 12
)

var (
	// ErrNotANumber is returned for text that is not a plain decimal number.
	ErrNotANumber = errors.New("not a plain decimal number")
	// ErrAmountOutOfRange is returned for amounts outside [0, MaxAmount].
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// plainNumber matches decimal notation without exponent, e.g. "150", "150.5", ".5".
var plainNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParsePriceOrZero parses a user-entered price.
// Empty, non-numeric, exponent, negative or out-of-range text yields zero.
func ParsePriceOrZero(text string) decimal.Decimal {
	v, err := ParseAmount(text)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParseBudgetOrDefault parses a budget entered as text.
// Text that is not a plain number falls back to the given default and the
// second return value is false. A number outside [0, MaxAmount] is an error.
func ParseBudgetOrDefault(text string, fallback decimal.Decimal) (decimal.Decimal, bool, error) {
	v, err := ParseAmount(text)
	switch {
	case errors.Is(err, ErrNotANumber):
		return fallback, false, nil
	case err != nil:
		return decimal.Zero, false, err
	}
	return v, true, nil
}

// ParseAmount parses a plain decimal amount within [0, MaxAmount].
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if len(s) > maxAmountText {
		return decimal.Zero, ErrAmountOutOfRange
	}
	if !plainNumber.MatchString(s) {
		return decimal.Zero, ErrNotANumber
	}

	digits := strings.TrimLeft(s, "+-")
	intPart, fracPart, _ := strings.Cut(digits, ".")
	if len(strings.TrimLeft(intPart, "0")) > maxIntegerDigits {
		return decimal.Zero, ErrAmountOutOfRange
	}
	if len(fracPart) > maxFractionDigits {
		return decimal.Zero, ErrNotANumber
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if v.IsNegative() || v.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountOutOfRange
	}
	return v, nil
}

// BudgetDelta is the signed difference between a budget target and an actual cost.
// Shown is false when the two are equal within 1e-9.
type BudgetDelta struct {
	Amount decimal.Decimal
	Shown  bool
}

// NewBudgetDelta computes target - actual.
func NewBudgetDelta(actual, target decimal.Decimal) BudgetDelta {
	diff := target.Sub(actual)
	if diff.Abs().LessThan(deltaEpsilon) {
		return BudgetDelta{Amount: decimal.Zero, Shown: false}
	}
	return BudgetDelta{Amount: diff, Shown: true}
}

// UnderBudget reports whether the actual cost is below the target.
func (d BudgetDelta) UnderBudget() bool {
	return d.Shown && d.Amount.IsPositive()
}

// OverBudget reports whether the actual cost exceeds the target.
func (d BudgetDelta) OverBudget() bool {
	return d.Shown && d.Amount.IsNegative()
}

// String formats the delta as "+40.00" or "-12.50", empty when hidden.
func (d BudgetDelta) String() string {
	if !d.Shown {
		return ""
	}
	if d.Amount.IsPositive() {
		return "+" + d.Amount.StringFixed(2)
	}
	return d.Amount.StringFixed(2)
}

// FormatAmount formats an amount with two decimals.
func FormatAmount(v decimal.Decimal) string {
	return v.StringFixed(2)
}
