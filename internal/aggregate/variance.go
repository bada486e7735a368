package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/biguard-dev/biguard/internal/model"
)

// Variance annotates one category that has both spend and a budget
// this period.
type Variance struct {
	Category   string
	Spend      decimal.Decimal
	Budget     decimal.Decimal
	OverBudget bool
}

// BudgetVariance flags overspend per category. Only categories present
// in both the breakdown and the budget set produce a row; a category
// without a budget never yields a variance flag.
func BudgetVariance(breakdown Breakdown, budgets []model.Budget) []Variance {
	byCategory := make(map[string]model.Budget, len(budgets))
	for _, b := range budgets {
		byCategory[b.Category] = b
	}

	var variances []Variance
	for _, ct := range breakdown.Totals {
		b, ok := byCategory[ct.Category]
		if !ok {
			continue
		}
		variances = append(variances, Variance{
			Category:   ct.Category,
			Spend:      ct.TotalAmount,
			Budget:     b.Amount,
			OverBudget: ct.TotalAmount.GreaterThan(b.Amount),
		})
	}
	sort.Slice(variances, func(i, j int) bool { return variances[i].Category < variances[j].Category })
	return variances
}
