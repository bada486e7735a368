package model

// RiskLevel is the overall risk across currently flagged transactions.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	// RiskLow is also the baseline when nothing is flagged.
	RiskLow RiskLevel = "low"
)

// SeverityCounts breaks the flagged set down by severity.
type SeverityCounts struct {
	High   int
	Medium int
	Low    int
}

// Total returns high + medium + low.
func (c SeverityCounts) Total() int {
	return c.High + c.Medium + c.Low
}

// AnomalySummary is the derived view of the flagged-transaction set.
// TotalCount always equals BySeverity.Total().
type AnomalySummary struct {
	TotalCount   int
	BySeverity   SeverityCounts
	RiskLevel    RiskLevel
	Transactions []Transaction
}
