// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BudgetKey identifies one of the four budget targets.
type BudgetKey string

const (
	BudgetWeekly     BudgetKey = "weekly"
	BudgetSunday     BudgetKey = "sunday"
	BudgetWeekdays   BudgetKey = "weekdays"
	BudgetGrandTotal BudgetKey = "grandTotal"
)

// BudgetKeys lists the budget keys in display order.
var BudgetKeys = []BudgetKey{BudgetWeekly, BudgetSunday, BudgetWeekdays, BudgetGrandTotal}

// IsValid reports whether the key is a known budget key.
func (k BudgetKey) IsValid() bool {
	for _, known := range BudgetKeys {
		if k == known {
			return true
		}
	}
	return false
}

// ParseBudgetKey converts a raw string into a BudgetKey.
// Both "grandTotal" and "grand_total" are accepted.
func ParseBudgetKey(s string) (BudgetKey, bool) {
	s = strings.TrimSpace(s)
	if s == "grand_total" {
		return BudgetGrandTotal, true
	}
	k := BudgetKey(s)
	return k, k.IsValid()
}

// BudgetTargets maps each budget key to its target amount.
type BudgetTargets map[BudgetKey]decimal.Decimal

// Get returns the target for a key, zero when unset.
func (b BudgetTargets) Get(key BudgetKey) decimal.Decimal {
	if v, ok := b[key]; ok {
		return v
	}
	return decimal.Zero
}

// Clone returns an independent copy of the targets.
func (b BudgetTargets) Clone() BudgetTargets {
	out := make(BudgetTargets, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
