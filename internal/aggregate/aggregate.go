// Package aggregate is the pure transformation layer of the dashboard.
// Every function is a deterministic, total function of its inputs:
// identical inputs yield identical outputs, malformed values degrade to
// zero, and nothing here mutates its arguments or holds state.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/biguard-dev/biguard/internal/model"
)

// CategoryTotal is one row of a category breakdown. TotalAmount is
// normalized to absolute value for display; SignedAmount keeps the raw
// sum for income/expense classification.
type CategoryTotal struct {
	Category     string
	TotalAmount  decimal.Decimal
	SignedAmount decimal.Decimal
}

// Breakdown is the category breakdown over a window. Unknown lists
// categories that fall outside the canonical set; they aggregate
// normally but are surfaced for operator review.
type Breakdown struct {
	Totals  []CategoryTotal
	Unknown []string
}

// CategoryBreakdown sums transaction amounts per category inside the
// window. Results are sorted by category name so recomputation from the
// same inputs is byte-identical. Transactions without a category land
// in the Others bucket.
func CategoryBreakdown(txs []model.Transaction, w Window) Breakdown {
	signed := make(map[string]decimal.Decimal)
	abs := make(map[string]decimal.Decimal)
	unknown := make(map[string]bool)

	for _, tx := range txs {
		if !w.Contains(tx.Date) {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = model.CategoryOthers
		}
		if !model.ValidCategory(cat) {
			unknown[cat] = true
		}
		signed[cat] = signed[cat].Add(tx.Amount)
		abs[cat] = abs[cat].Add(tx.Amount.Abs())
	}

	totals := make([]CategoryTotal, 0, len(abs))
	for cat := range abs {
		totals = append(totals, CategoryTotal{
			Category:     cat,
			TotalAmount:  abs[cat],
			SignedAmount: signed[cat],
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })

	names := make([]string, 0, len(unknown))
	for cat := range unknown {
		names = append(names, cat)
	}
	sort.Strings(names)

	return Breakdown{Totals: totals, Unknown: names}
}

// IncomeExpenseTotals partitions a window of transactions by IsExpense.
// Expenses is the absolute spent amount; Net = Income - Expenses.
type IncomeExpenseTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// Totals computes income/expense totals over the window.
func Totals(txs []model.Transaction, w Window) IncomeExpenseTotals {
	var income, expenses decimal.Decimal
	for _, tx := range txs {
		if !w.Contains(tx.Date) {
			continue
		}
		if tx.IsExpense {
			expenses = expenses.Add(tx.Amount.Abs())
		} else {
			income = income.Add(tx.Amount.Abs())
		}
	}
	return IncomeExpenseTotals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}
}

// NetIncome resolves the monthly net income. The server-computed value
// is authoritative when stats are available; otherwise it falls back to
// the client-side income - expenses.
func NetIncome(stats *model.AccountStats, totals IncomeExpenseTotals) decimal.Decimal {
	if stats != nil {
		return stats.MonthlyNetIncome
	}
	return totals.Net
}
