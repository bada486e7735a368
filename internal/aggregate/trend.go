package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/biguard-dev/biguard/internal/model"
)

// trendBuckets caps the series at the most recent populated days.
const trendBuckets = 30

// TrendPoint is one calendar day's income and expense totals.
type TrendPoint struct {
	Date     time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// TrendSeries buckets transactions by calendar date and returns the
// most recent 30 populated days in ascending date order. Days without
// transactions produce no bucket; an empty input yields a nil series.
func TrendSeries(txs []model.Transaction) []TrendPoint {
	buckets := make(map[time.Time]*TrendPoint)
	for _, tx := range txs {
		day := time.Date(tx.Date.Year(), tx.Date.Month(), tx.Date.Day(), 0, 0, 0, 0, time.UTC)
		p, ok := buckets[day]
		if !ok {
			p = &TrendPoint{Date: day}
			buckets[day] = p
		}
		if tx.IsExpense {
			p.Expenses = p.Expenses.Add(tx.Amount.Abs())
		} else {
			p.Income = p.Income.Add(tx.Amount.Abs())
		}
	}
	if len(buckets) == 0 {
		return nil
	}

	series := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	if len(series) > trendBuckets {
		series = series[len(series)-trendBuckets:]
	}
	return series
}

// BalancePoint is one day in a running-balance history.
type BalancePoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

// BalanceHistory reconstructs an account's balance over time by
// walking backwards from the current balance through its transactions,
// newest first. The result is in chronological order.
func BalanceHistory(account model.Account, txs []model.Transaction) []BalancePoint {
	var own []model.Transaction
	for _, tx := range txs {
		if tx.AccountID == account.ID {
			own = append(own, tx)
		}
	}
	if len(own) == 0 {
		return nil
	}
	sort.Slice(own, func(i, j int) bool { return own[i].Date.After(own[j].Date) })

	running := account.CurrentBalance
	history := make([]BalancePoint, 0, len(own)+1)
	for _, tx := range own {
		history = append(history, BalancePoint{Date: tx.Date, Balance: running})
		running = running.Sub(tx.Amount)
	}
	last := own[len(own)-1]
	history = append(history, BalancePoint{
		Date:    last.Date.AddDate(0, 0, -1),
		Balance: running,
	})

	// Reverse into chronological order.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history
}
