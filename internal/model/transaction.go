package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity ranks a fraud annotation.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// FraudFlag is a backend-supplied annotation on a suspect transaction.
// It may be attached or cleared independently of the transaction itself.
type FraudFlag struct {
	Score       decimal.Decimal
	Severity    Severity
	ThreatLevel Severity
	Reasons     []string
	DetectedAt  time.Time
}

// Transaction is one synced bank transaction. Amounts are signed:
// negative = money out, positive = money in. A posted transaction
// (Pending=false) is immutable except for its fraud annotation.
type Transaction struct {
	ID           string
	AccountID    string
	Date         time.Time
	Name         string
	MerchantName string
	Amount       decimal.Decimal
	Category     string
	Pending      bool
	IsExpense    bool
	Fraud        *FraudFlag
}

// Flagged reports whether the transaction carries a fraud annotation.
func (t Transaction) Flagged() bool {
	return t.Fraud != nil
}
