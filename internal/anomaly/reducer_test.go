package anomaly

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biguard-dev/biguard/internal/model"
)

func flagged(id string, severity model.Severity, detected time.Time) model.Transaction {
	return model.Transaction{
		ID:   id,
		Name: "Suspicious " + id,
		Fraud: &model.FraudFlag{
			Severity:    severity,
			ThreatLevel: severity,
			Reasons:     []string{"Unusual transaction pattern"},
			DetectedAt:  detected,
		},
	}
}

func at(hour int) time.Time {
	return time.Date(2026, 8, 20, hour, 0, 0, 0, time.UTC)
}

func TestSummarize_SeveritySumInvariant(t *testing.T) {
	txs := []model.Transaction{
		flagged("1", model.SeverityHigh, at(1)),
		flagged("2", model.SeverityHigh, at(2)),
		flagged("3", model.SeverityMedium, at(3)),
		flagged("4", model.SeverityLow, at(4)),
		{ID: "5", Name: "Unflagged"},
	}

	s := Summarize(txs)
	assert.Equal(t, 4, s.TotalCount)
	assert.Equal(t, s.TotalCount, s.BySeverity.High+s.BySeverity.Medium+s.BySeverity.Low)
	assert.Equal(t, 2, s.BySeverity.High)
	assert.Equal(t, 1, s.BySeverity.Medium)
	assert.Equal(t, 1, s.BySeverity.Low)
}

func TestSummarize_RiskLevelOrdering(t *testing.T) {
	tests := []struct {
		name string
		txs  []model.Transaction
		want model.RiskLevel
	}{
		{"high wins", []model.Transaction{
			flagged("1", model.SeverityLow, at(1)),
			flagged("2", model.SeverityHigh, at(2)),
		}, model.RiskHigh},
		{"medium without high", []model.Transaction{
			flagged("1", model.SeverityMedium, at(1)),
			flagged("2", model.SeverityLow, at(2)),
		}, model.RiskMedium},
		{"low only", []model.Transaction{
			flagged("1", model.SeverityLow, at(1)),
		}, model.RiskLow},
		{"empty set baseline", nil, model.RiskLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.txs).RiskLevel)
		})
	}
}

func TestSummarize_FeedOrderingAndDedup(t *testing.T) {
	txs := []model.Transaction{
		flagged("b", model.SeverityLow, at(1)),
		flagged("a", model.SeverityHigh, at(3)),
		flagged("b", model.SeverityLow, at(1)), // duplicate ID
		flagged("c", model.SeverityMedium, at(3)),
	}

	s := Summarize(txs)
	require.Len(t, s.Transactions, 3)
	// Newest first; ties break on ID for a stable feed.
	assert.Equal(t, "a", s.Transactions[0].ID)
	assert.Equal(t, "c", s.Transactions[1].ID)
	assert.Equal(t, "b", s.Transactions[2].ID)
	assert.Equal(t, 3, s.TotalCount)
}

func TestSummarize_Deterministic(t *testing.T) {
	txs := []model.Transaction{
		flagged("1", model.SeverityHigh, at(1)),
		flagged("2", model.SeverityLow, at(2)),
	}
	assert.Equal(t, Summarize(txs), Summarize(txs))
}

type fakeClearer struct {
	calls int
	err   error
}

func (f *fakeClearer) ClearFraudulent(ctx context.Context, sess model.SessionContext) error {
	f.calls++
	return f.err
}

func TestClear(t *testing.T) {
	// 2 high + 1 low flagged, then cleared.
	before := Summarize([]model.Transaction{
		flagged("1", model.SeverityHigh, at(1)),
		flagged("2", model.SeverityHigh, at(2)),
		flagged("3", model.SeverityLow, at(3)),
	})
	require.Equal(t, 3, before.TotalCount)
	require.Equal(t, model.RiskHigh, before.RiskLevel)

	backend := &fakeClearer{}
	after, err := Clear(context.Background(), backend, model.SessionContext{UserID: "u"})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, 0, after.TotalCount)
	assert.Equal(t, model.RiskLow, after.RiskLevel)
	assert.Empty(t, after.Transactions)
}

func TestClear_BackendError(t *testing.T) {
	backend := &fakeClearer{err: errors.New("connection refused")}

	_, err := Clear(context.Background(), backend, model.SessionContext{UserID: "u"})
	assert.Error(t, err)
}
