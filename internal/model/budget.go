package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the recurrence of a budget.
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spend for one category. Category is the natural key:
// one budget per (user, category).
type Budget struct {
	ID       string
	Category string
	Amount   decimal.Decimal
	Period   BudgetPeriod
}

// Validate checks the category against the canonical set and the
// period against the known recurrences.
func (b Budget) Validate() error {
	if !ValidCategory(b.Category) {
		return fmt.Errorf("unknown budget category %q", b.Category)
	}
	switch b.Period {
	case PeriodMonthly, PeriodWeekly, PeriodYearly:
		return nil
	default:
		return fmt.Errorf("unknown budget period %q", b.Period)
	}
}
