package models

// DecisionStats is the aggregate view of a user's stored decisions.
type DecisionStats struct {
	Total         int              `json:"total"`
	ByOutcome     map[Outcome]int  `json:"by_outcome"`
	ByCategory    map[Category]int `json:"by_category"`
	AverageRisk   float64          `json:"average_risk"`
	HighRiskCount int              `json:"high_risk_count"`
}
