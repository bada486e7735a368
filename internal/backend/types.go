package backend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/biguard-dev/biguard/internal/model"
)

const dateFormat = "2006-01-02"

type accountDTO struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Subtype          string          `json:"subtype"`
	Mask             string          `json:"mask"`
	InstitutionName  string          `json:"institution_name"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LastUpdated      time.Time       `json:"last_updated"`
}

func (d accountDTO) toModel() model.Account {
	return model.Account{
		ID:               d.ID,
		Name:             d.Name,
		Type:             model.ParseAccountType(d.Subtype),
		Mask:             d.Mask,
		InstitutionName:  d.InstitutionName,
		CurrentBalance:   d.CurrentBalance,
		AvailableBalance: d.AvailableBalance,
		LastUpdated:      d.LastUpdated,
	}
}

type fraudFlagDTO struct {
	Score       decimal.Decimal `json:"anomaly_score"`
	Severity    string          `json:"severity"`
	ThreatLevel string          `json:"threat_level"`
	Reasons     []string        `json:"reasons"`
	DetectedAt  time.Time       `json:"detected_at"`
}

type transactionDTO struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Date         string          `json:"date"`
	Name         string          `json:"name"`
	MerchantName string          `json:"merchant_name"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Pending      bool            `json:"pending"`
	IsExpense    bool            `json:"is_expense"`
	Fraud        *fraudFlagDTO   `json:"fraud,omitempty"`
}

func (d transactionDTO) toModel() model.Transaction {
	// Unparseable dates degrade to the zero time rather than failing
	// the whole sync.
	date, _ := time.Parse(dateFormat, d.Date)

	tx := model.Transaction{
		ID:           d.ID,
		AccountID:    d.AccountID,
		Date:         date,
		Name:         d.Name,
		MerchantName: d.MerchantName,
		Amount:       d.Amount,
		Category:     d.Category,
		Pending:      d.Pending,
		IsExpense:    d.IsExpense,
	}
	if d.Fraud != nil {
		tx.Fraud = &model.FraudFlag{
			Score:       d.Fraud.Score,
			Severity:    model.Severity(d.Fraud.Severity),
			ThreatLevel: model.Severity(d.Fraud.ThreatLevel),
			Reasons:     d.Fraud.Reasons,
			DetectedAt:  d.Fraud.DetectedAt,
		}
	}
	return tx
}

func toTransactions(dtos []transactionDTO) []model.Transaction {
	txs := make([]model.Transaction, 0, len(dtos))
	for _, d := range dtos {
		txs = append(txs, d.toModel())
	}
	return txs
}

type budgetDTO struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   string          `json:"period"`
}

func (d budgetDTO) toModel() model.Budget {
	return model.Budget{
		ID:       d.ID,
		Category: d.Category,
		Amount:   d.Amount,
		Period:   model.BudgetPeriod(d.Period),
	}
}

type anomalySummaryDTO struct {
	TotalAnomalies int              `json:"total_anomalies"`
	HighSeverity   int              `json:"high_severity"`
	MediumSeverity int              `json:"medium_severity"`
	LowSeverity    int              `json:"low_severity"`
	RiskLevel      string           `json:"risk_level"`
	Transactions   []transactionDTO `json:"fraudulent_transactions"`
}

func (d anomalySummaryDTO) toModel() *model.AnomalySummary {
	return &model.AnomalySummary{
		TotalCount: d.TotalAnomalies,
		BySeverity: model.SeverityCounts{
			High:   d.HighSeverity,
			Medium: d.MediumSeverity,
			Low:    d.LowSeverity,
		},
		RiskLevel:    model.RiskLevel(d.RiskLevel),
		Transactions: toTransactions(d.Transactions),
	}
}

type accountStatsDTO struct {
	Accounts          []accountDTO               `json:"accounts"`
	TotalSpent        decimal.Decimal            `json:"total_spent"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	MonthlyNetIncome  decimal.Decimal            `json:"monthly_net_income"`
	NetFlow           decimal.Decimal            `json:"net_flow"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
	FraudAlertsCount  int                        `json:"fraud_alerts_count"`
	CurrentBalance    decimal.Decimal            `json:"current_balance"`
	Transactions      []transactionDTO           `json:"transactions"`
	Budgets           map[string]budgetDTO       `json:"budgets"`
}

func (d accountStatsDTO) toModel() model.AccountStats {
	accounts := make([]model.Account, 0, len(d.Accounts))
	for _, a := range d.Accounts {
		accounts = append(accounts, a.toModel())
	}
	budgets := make(map[string]model.Budget, len(d.Budgets))
	for cat, b := range d.Budgets {
		budgets[cat] = b.toModel()
	}
	return model.AccountStats{
		Accounts:          accounts,
		TotalSpent:        d.TotalSpent,
		TotalIncome:       d.TotalIncome,
		MonthlyNetIncome:  d.MonthlyNetIncome,
		NetFlow:           d.NetFlow,
		CategoryBreakdown: d.CategoryBreakdown,
		FraudAlertCount:   d.FraudAlertsCount,
		CurrentBalance:    d.CurrentBalance,
		Transactions:      toTransactions(d.Transactions),
		Budgets:           budgets,
	}
}

type dashboardStatsDTO struct {
	User struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"user"`
	Checking accountStatsDTO `json:"checking"`
	Savings  accountStatsDTO `json:"savings"`
}

func (d dashboardStatsDTO) toModel() *model.DashboardStats {
	return &model.DashboardStats{
		UserFirstName: d.User.FirstName,
		UserLastName:  d.User.LastName,
		Checking:      d.Checking.toModel(),
		Savings:       d.Savings.toModel(),
	}
}
