package model

import "github.com/shopspring/decimal"

// AccountStats is the server-computed view over one account type
// (checking or savings) for the trailing 30 days.
type AccountStats struct {
	Accounts          []Account
	TotalSpent        decimal.Decimal
	TotalIncome       decimal.Decimal
	MonthlyNetIncome  decimal.Decimal
	NetFlow           decimal.Decimal
	CategoryBreakdown map[string]decimal.Decimal
	FraudAlertCount   int
	CurrentBalance    decimal.Decimal
	Transactions      []Transaction
	Budgets           map[string]Budget
}

// DashboardStats is the payload of the dashboard stats source. When
// present its MonthlyNetIncome is authoritative; the aggregation engine
// recomputes it from raw transactions only when stats are absent.
type DashboardStats struct {
	UserFirstName string
	UserLastName  string
	Checking      AccountStats
	Savings       AccountStats
}
