package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies linked bank accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeOther    AccountType = "other"
)

// Account represents a linked bank account as reported by the
// transaction source. Balances are refreshed on every sync.
type Account struct {
	ID               string
	Name             string
	Type             AccountType
	Mask             string
	InstitutionName  string
	CurrentBalance   decimal.Decimal
	AvailableBalance decimal.Decimal
	ProviderAccessID string
	LastUpdated      time.Time
}

// ParseAccountType maps a provider subtype string to an AccountType.
// Anything that is not checking or savings collapses to "other".
func ParseAccountType(subtype string) AccountType {
	switch AccountType(subtype) {
	case AccountTypeChecking:
		return AccountTypeChecking
	case AccountTypeSavings:
		return AccountTypeSavings
	default:
		return AccountTypeOther
	}
}

// PartitionAccounts splits accounts into checking, savings, and other.
func PartitionAccounts(accounts []Account) (checking, savings, other []Account) {
	for _, a := range accounts {
		switch a.Type {
		case AccountTypeChecking:
			checking = append(checking, a)
		case AccountTypeSavings:
			savings = append(savings, a)
		default:
			other = append(other, a)
		}
	}
	return checking, savings, other
}
