package models

import "time"

// InsightType identifies which pipeline stage produced an insight and
// which metadata fields are expected to be populated.
type InsightType string

const (
	InsightDecisionDetected      InsightType = "decision_detected"
	InsightPatternDetected       InsightType = "pattern_detected"
	InsightSimilarDecision       InsightType = "similar_decision"
	InsightRiskWarning           InsightType = "risk_warning"
	InsightConsequencePrediction InsightType = "consequence_prediction"
	InsightRecommendation        InsightType = "recommendation"
)

// MethodFallback tags insights produced by a local heuristic after the
// enrichment service failed.
const MethodFallback = "fallback"

// InsightMetadata carries the per-type payload of an insight. Each insight
// type populates only its own fields; everything else stays at the zero
// value and is omitted from JSON.
type InsightMetadata struct {
	// decision_detected
	Outcome Outcome `json:"outcome,omitempty"`

	// pattern_detected (within-category)
	Category Category `json:"category,omitempty"`
	Phrase   string   `json:"phrase,omitempty"`
	Count    int      `json:"count,omitempty"`

	// pattern_detected (cross-category outcome skew)
	DominantOutcome Outcome `json:"dominant_outcome,omitempty"`
	Percentage      float64 `json:"percentage,omitempty"`
	TotalDecisions  int     `json:"total_decisions,omitempty"`

	// risk_warning
	RiskLevel   float64  `json:"risk_level,omitempty"`
	RiskFactors []string `json:"risk_factors,omitempty"`

	// similar_decision
	SimilarDecisionID string  `json:"similar_decision_id,omitempty"`
	SimilarityScore   float64 `json:"similarity_score,omitempty"`

	// consequence_prediction
	PredictedConsequence string  `json:"predicted_consequence,omitempty"`
	PredictionScore      float64 `json:"prediction_score,omitempty"`

	// Method is MethodFallback when a local heuristic produced the insight.
	Method string `json:"method,omitempty"`
}

// Insight is a single observation generated by one pipeline stage.
// Insights are created once and never mutated; the engine stamps UserID
// before handing them to the recommender and the persistence sink.
type Insight struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Type       InsightType     `json:"type"`
	Message    string          `json:"message"`
	Confidence float64         `json:"confidence"`
	Timestamp  time.Time       `json:"timestamp"`
	DecisionID string          `json:"decision_id,omitempty"`
	Metadata   InsightMetadata `json:"metadata"`
}
