package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biguard-dev/biguard/internal/logger"
	"github.com/biguard-dev/biguard/internal/model"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, logger.NewWithWriter(testWriter{t}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func session() model.SessionContext {
	return model.SessionContext{UserID: "user-1", Credential: "jwt-abc"}
}

func TestListAccounts(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounts", r.URL.Path)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "acc-1", "name": "Plaid Checking", "subtype": "checking", "current_balance": 500.25},
			{"id": "acc-2", "name": "Plaid Saving", "subtype": "savings", "current_balance": 1200},
		})
	})

	accounts, err := c.ListAccounts(context.Background(), session())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, model.AccountTypeChecking, accounts[0].Type)
	assert.True(t, accounts[0].CurrentBalance.Equal(decimal.RequireFromString("500.25")))
	assert.Equal(t, model.AccountTypeSavings, accounts[1].Type)
}

func TestSyncTransactions(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Synced 1 new transactions",
			"transactions": []map[string]any{{
				"id":         "tx-1",
				"account_id": "acc-1",
				"date":       "2026-08-14",
				"name":       "Uber Ride",
				"amount":     -23.40,
				"category":   "Travel",
				"is_expense": true,
			}},
		})
	})

	txs, err := c.SyncTransactions(context.Background(), session(), 50)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Uber Ride", txs[0].Name)
	assert.Equal(t, 2026, txs[0].Date.Year())
	assert.True(t, txs[0].IsExpense)
	assert.False(t, txs[0].Flagged())
}

func TestSyncTransactions_PageSizeCap(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "200", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode(map[string]any{"transactions": []any{}})
	})

	_, err := c.SyncTransactions(context.Background(), session(), 5000)
	require.NoError(t, err)
}

func TestBudgetCRUD(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/budgets":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "Food & Drinks", body["category"])
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "b-1", "category": "Food & Drinks", "amount": 50, "period": "monthly",
			})
		case r.Method == http.MethodPut && r.URL.Path == "/api/budgets/b-1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "b-1", "category": "Food & Drinks", "amount": 75, "period": "monthly",
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/budgets/b-1":
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Budget deleted"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/budgets":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": "b-1", "category": "Food & Drinks", "amount": 75, "period": "monthly"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	created, err := c.CreateBudget(ctx, session(), model.Budget{
		Category: "Food & Drinks",
		Amount:   decimal.NewFromInt(50),
		Period:   model.PeriodMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, "b-1", created.ID)

	created.Amount = decimal.NewFromInt(75)
	updated, err := c.UpdateBudget(ctx, session(), created)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(75)))

	budgets, err := c.ListBudgets(ctx, session())
	require.NoError(t, err)
	require.Len(t, budgets, 1)

	require.NoError(t, c.DeleteBudget(ctx, session(), "b-1"))
}

func TestCreateBudget_InvalidCategory(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the backend")
	})

	_, err := c.CreateBudget(context.Background(), session(), model.Budget{
		Category: "Lottery",
		Amount:   decimal.NewFromInt(10),
		Period:   model.PeriodMonthly,
	})
	assert.Error(t, err)
}

func TestGetAnomalySummary(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_anomalies": 3,
			"high_severity":   2,
			"medium_severity": 0,
			"low_severity":    1,
			"risk_level":      "high",
			"fraudulent_transactions": []map[string]any{{
				"id":     "tx-9",
				"name":   "SUSPICIOUS ONLINE PURCHASE",
				"amount": -2499.99,
				"date":   "2026-08-20",
				"fraud": map[string]any{
					"anomaly_score": 0.95,
					"severity":      "high",
					"threat_level":  "high",
					"reasons":       []string{"High amount ($2,499.99)"},
					"detected_at":   "2026-08-20T10:00:00Z",
				},
			}},
		})
	})

	summary, err := c.GetAnomalySummary(context.Background(), session())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, summary.TotalCount, summary.BySeverity.Total())
	assert.Equal(t, model.RiskHigh, summary.RiskLevel)
	require.Len(t, summary.Transactions, 1)
	require.True(t, summary.Transactions[0].Flagged())
	assert.Equal(t, model.SeverityHigh, summary.Transactions[0].Fraud.Severity)
}

func TestGetAnomalySummary_BackendDown(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.GetAnomalySummary(context.Background(), session())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClearFraudulent(t *testing.T) {
	cleared := false
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/anomaly/clear", r.URL.Path)
		cleared = true
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "cleared"})
	})

	require.NoError(t, c.ClearFraudulent(context.Background(), session()))
	assert.True(t, cleared)
}

func TestGetDashboardStats(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"firstName": "Ada", "lastName": "Lovelace"},
			"checking": map[string]any{
				"current_balance":    500,
				"monthly_net_income": 1200.50,
				"category_breakdown": map[string]float64{"Food & Drinks": 100},
			},
			"savings": map[string]any{"current_balance": 9000},
		})
	})

	stats, err := c.GetDashboardStats(context.Background(), session())
	require.NoError(t, err)
	assert.Equal(t, "Ada", stats.UserFirstName)
	assert.True(t, stats.Checking.MonthlyNetIncome.Equal(decimal.RequireFromString("1200.5")))
	assert.True(t, stats.Savings.CurrentBalance.Equal(decimal.NewFromInt(9000)))
}

func TestErrorPayloadMapping(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Email already registered"})
	})

	_, err := c.ListBudgets(context.Background(), session())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
}
