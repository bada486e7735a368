// Package anomaly reduces the backend's flagged-transaction set into
// the dashboard's risk summary and alert feed. The reduction is pure;
// clearing flags is the one destructive operation and is delegated to
// the detection backend.
package anomaly

import (
	"context"
	"fmt"
	"sort"

	"github.com/biguard-dev/biguard/internal/model"
)

// Clearer instructs the detection backend to unflag all currently
// flagged transactions.
type Clearer interface {
	ClearFraudulent(ctx context.Context, sess model.SessionContext) error
}

// Summarize reduces the flagged transactions into severity counts, an
// overall risk level, and a de-duplicated feed in reverse-chronological
// detection order. Unflagged transactions in the input are ignored.
func Summarize(txs []model.Transaction) model.AnomalySummary {
	seen := make(map[string]bool)
	var flagged []model.Transaction
	var counts model.SeverityCounts

	for _, tx := range txs {
		if !tx.Flagged() || seen[tx.ID] {
			continue
		}
		seen[tx.ID] = true
		flagged = append(flagged, tx)

		switch tx.Fraud.Severity {
		case model.SeverityHigh:
			counts.High++
		case model.SeverityMedium:
			counts.Medium++
		default:
			counts.Low++
		}
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		ti, tj := flagged[i].Fraud.DetectedAt, flagged[j].Fraud.DetectedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return flagged[i].ID < flagged[j].ID
	})

	return model.AnomalySummary{
		TotalCount:   counts.Total(),
		BySeverity:   counts,
		RiskLevel:    riskLevel(counts),
		Transactions: flagged,
	}
}

// riskLevel is the highest severity present; low is the baseline when
// nothing is flagged.
func riskLevel(counts model.SeverityCounts) model.RiskLevel {
	switch {
	case counts.High > 0:
		return model.RiskHigh
	case counts.Medium > 0:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Clear unflags every flagged transaction via the backend, then
// returns the summary recomputed from the empty set. There is no
// local-only undo.
func Clear(ctx context.Context, backend Clearer, sess model.SessionContext) (model.AnomalySummary, error) {
	if err := backend.ClearFraudulent(ctx, sess); err != nil {
		return model.AnomalySummary{}, fmt.Errorf("clearing flagged transactions: %w", err)
	}
	return Summarize(nil), nil
}
