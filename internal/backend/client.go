// Package backend holds the HTTP clients for the orchestrator's
// collaborators: the transaction/account source, the budget store, the
// anomaly detection backend, and the dashboard stats source. Every call
// is authorized with the session's opaque bearer credential.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/biguard-dev/biguard/internal/model"
)

// ErrUnavailable means the backend could not be reached or answered
// with a non-API error.
var ErrUnavailable = errors.New("backend unavailable")

// MaxPageSize caps transactions per sync request.
const MaxPageSize = 200

// Client is an HTTP client for the dashboard backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a backend Client.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ListAccounts fetches the user's linked accounts.
func (c *Client) ListAccounts(ctx context.Context, sess model.SessionContext) ([]model.Account, error) {
	var dtos []accountDTO
	if err := c.do(ctx, sess, http.MethodGet, "/api/accounts", nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	accounts := make([]model.Account, 0, len(dtos))
	for _, d := range dtos {
		accounts = append(accounts, d.toModel())
	}
	return accounts, nil
}

// SyncTransactions pulls fresh transactions from the provider via the
// backend. pageSize is capped at MaxPageSize.
func (c *Client) SyncTransactions(ctx context.Context, sess model.SessionContext, pageSize int) ([]model.Transaction, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	var resp struct {
		Message      string           `json:"message"`
		Transactions []transactionDTO `json:"transactions"`
	}
	path := fmt.Sprintf("/api/transactions/sync?per_page=%d", pageSize)
	if err := c.do(ctx, sess, http.MethodPost, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("syncing transactions: %w", err)
	}
	return toTransactions(resp.Transactions), nil
}

// ListBudgets fetches all budgets for the user.
func (c *Client) ListBudgets(ctx context.Context, sess model.SessionContext) ([]model.Budget, error) {
	var dtos []budgetDTO
	if err := c.do(ctx, sess, http.MethodGet, "/api/budgets", nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	budgets := make([]model.Budget, 0, len(dtos))
	for _, d := range dtos {
		budgets = append(budgets, d.toModel())
	}
	return budgets, nil
}

// CreateBudget creates a budget after validating it against the
// canonical category set.
func (c *Client) CreateBudget(ctx context.Context, sess model.SessionContext, b model.Budget) (model.Budget, error) {
	if err := b.Validate(); err != nil {
		return model.Budget{}, err
	}
	var dto budgetDTO
	if err := c.do(ctx, sess, http.MethodPost, "/api/budgets", budgetBody(b), &dto); err != nil {
		return model.Budget{}, fmt.Errorf("creating budget: %w", err)
	}
	return dto.toModel(), nil
}

// UpdateBudget updates an existing budget's amount and period.
func (c *Client) UpdateBudget(ctx context.Context, sess model.SessionContext, b model.Budget) (model.Budget, error) {
	if err := b.Validate(); err != nil {
		return model.Budget{}, err
	}
	var dto budgetDTO
	if err := c.do(ctx, sess, http.MethodPut, "/api/budgets/"+b.ID, budgetBody(b), &dto); err != nil {
		return model.Budget{}, fmt.Errorf("updating budget: %w", err)
	}
	return dto.toModel(), nil
}

// DeleteBudget deletes a budget by ID.
func (c *Client) DeleteBudget(ctx context.Context, sess model.SessionContext, id string) error {
	if err := c.do(ctx, sess, http.MethodDelete, "/api/budgets/"+id, nil, nil); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	return nil
}

// GetAnomalySummary fetches the detection backend's summary of
// currently flagged transactions.
func (c *Client) GetAnomalySummary(ctx context.Context, sess model.SessionContext) (*model.AnomalySummary, error) {
	var dto anomalySummaryDTO
	if err := c.do(ctx, sess, http.MethodGet, "/api/anomaly/summary", nil, &dto); err != nil {
		return nil, fmt.Errorf("fetching anomaly summary: %w", err)
	}
	return dto.toModel(), nil
}

// ClearFraudulent instructs the backend to unflag all currently
// flagged transactions. Irreversible from the client's perspective.
func (c *Client) ClearFraudulent(ctx context.Context, sess model.SessionContext) error {
	if err := c.do(ctx, sess, http.MethodPost, "/api/anomaly/clear", nil, nil); err != nil {
		return fmt.Errorf("clearing fraudulent transactions: %w", err)
	}
	return nil
}

// GetDashboardStats fetches the server-computed dashboard structure.
func (c *Client) GetDashboardStats(ctx context.Context, sess model.SessionContext) (*model.DashboardStats, error) {
	var dto dashboardStatsDTO
	if err := c.do(ctx, sess, http.MethodGet, "/api/dashboard/stats", nil, &dto); err != nil {
		return nil, fmt.Errorf("fetching dashboard stats: %w", err)
	}
	return dto.toModel(), nil
}

func budgetBody(b model.Budget) map[string]any {
	return map[string]any{
		"category": b.Category,
		"amount":   b.Amount,
		"period":   string(b.Period),
	}
}

func (c *Client) do(ctx context.Context, sess model.SessionContext, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sess.Credential)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
			Str("error", apiErr.Error).Msg("backend request failed")
		if apiErr.Error != "" {
			return fmt.Errorf("backend rejected request: %s", apiErr.Error)
		}
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
