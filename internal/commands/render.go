package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/biguard-dev/biguard/internal/aggregate"
	"github.com/biguard-dev/biguard/internal/model"
	"github.com/biguard-dev/biguard/internal/store"
)

// renderDashboard writes the dashboard view for a snapshot: linked
// accounts, current-month totals, category breakdown, budget variance,
// recent activity, and the anomaly card. Missing resources render as
// unavailable rather than blanking the rest of the view.
func renderDashboard(w io.Writer, snap store.Snapshot, now time.Time) {
	if snap.Stats != nil && snap.Stats.UserFirstName != "" {
		fmt.Fprintf(w, "Dashboard for %s %s\n\n", snap.Stats.UserFirstName, snap.Stats.UserLastName)
	}

	renderAccounts(w, snap.Accounts)

	month := aggregate.CurrentMonth(now)
	totals := aggregate.Totals(snap.Transactions, month)
	var stats *model.AccountStats
	if snap.Stats != nil {
		stats = &snap.Stats.Checking
	}
	fmt.Fprintf(w, "This month: income %s, expenses %s, net %s\n\n",
		money(totals.Income), money(totals.Expenses), money(aggregate.NetIncome(stats, totals)))

	breakdown := aggregate.CategoryBreakdown(snap.Transactions, month)
	renderBreakdown(w, breakdown)
	renderVariance(w, aggregate.BudgetVariance(breakdown, snap.Budgets))
	renderTrend(w, aggregate.TrendSeries(snap.Transactions))
	renderAnomaly(w, snap.Anomaly, snap.Status[store.ResourceAnomaly])

	if !snap.LastSynced.IsZero() {
		fmt.Fprintf(w, "Last synced %s\n", snap.LastSynced.Format(time.RFC3339))
	}
}

func renderAccounts(w io.Writer, accounts []model.Account) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No linked accounts. Run: biguard link start")
		fmt.Fprintln(w)
		return
	}

	checking, savings, other := model.PartitionAccounts(accounts)
	groups := []struct {
		label    string
		accounts []model.Account
	}{
		{"Checking", checking},
		{"Savings", savings},
		{"Other", other},
	}
	for _, g := range groups {
		for _, a := range g.accounts {
			fmt.Fprintf(w, "%-9s %s (%s) %12s\n", g.label, a.Name, a.Mask, money(a.CurrentBalance))
		}
	}
	fmt.Fprintln(w)
}

func renderBreakdown(w io.Writer, b aggregate.Breakdown) {
	if len(b.Totals) == 0 {
		return
	}
	fmt.Fprintln(w, "Spending by category:")
	for _, ct := range b.Totals {
		fmt.Fprintf(w, "  %-22s %12s\n", ct.Category, money(ct.TotalAmount))
	}
	if len(b.Unknown) > 0 {
		fmt.Fprintf(w, "  (unrecognized categories: %v)\n", b.Unknown)
	}
	fmt.Fprintln(w)
}

func renderVariance(w io.Writer, variances []aggregate.Variance) {
	if len(variances) == 0 {
		return
	}
	fmt.Fprintln(w, "Budgets:")
	for _, v := range variances {
		marker := ""
		if v.OverBudget {
			marker = "  OVER"
		}
		fmt.Fprintf(w, "  %-22s %12s of %12s%s\n", v.Category, money(v.Spend), money(v.Budget), marker)
	}
	fmt.Fprintln(w)
}

func renderTrend(w io.Writer, series []aggregate.TrendPoint) {
	if len(series) == 0 {
		return
	}
	fmt.Fprintln(w, "Recent activity:")
	for _, p := range series {
		fmt.Fprintf(w, "  %s  in %12s  out %12s\n", p.Date.Format("2006-01-02"), money(p.Income), money(p.Expenses))
	}
	fmt.Fprintln(w)
}

func renderAnomaly(w io.Writer, summary *model.AnomalySummary, status store.Status) {
	if summary == nil {
		if status.Err != "" {
			fmt.Fprintf(w, "Anomaly summary unavailable: %s\n\n", status.Err)
		}
		return
	}
	fmt.Fprintf(w, "Risk level: %s (%d flagged: %d high, %d medium, %d low)\n\n",
		summary.RiskLevel, summary.TotalCount,
		summary.BySeverity.High, summary.BySeverity.Medium, summary.BySeverity.Low)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
