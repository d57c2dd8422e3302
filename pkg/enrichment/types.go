// Package enrichment provides clients for the external enrichment service
// that performs heavyweight similarity and consequence inference over
// extracted decisions. All clients speak the same wire contract; callers
// that receive an error are expected to fall back to local heuristics.
package enrichment

import "github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"

// DecisionSummary is the slice of a decision sent to the enrichment service.
type DecisionSummary struct {
	ID                string   `json:"id"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Outcome           string   `json:"outcome,omitempty"`
	RiskLevel         float64  `json:"risk_level,omitempty"`
	SimilarityMatches []string `json:"similarity_matches,omitempty"`
}

// AnalysisRequest is the request body for both enrichment operations.
type AnalysisRequest struct {
	Decisions []DecisionSummary `json:"decisions"`
}

// NewAnalysisRequest builds a request from the pipeline's decision set.
func NewAnalysisRequest(decisions []*models.Decision) *AnalysisRequest {
	req := &AnalysisRequest{Decisions: make([]DecisionSummary, 0, len(decisions))}
	for _, d := range decisions {
		req.Decisions = append(req.Decisions, DecisionSummary{
			ID:                d.ID,
			Description:       d.Description,
			Category:          string(d.Category),
			Outcome:           string(d.Outcome),
			RiskLevel:         d.RiskLevel,
			SimilarityMatches: d.SimilarityMatches,
		})
	}
	return req
}

// SimilarityMatch is one similarity link returned by the service.
// The decisionId key casing is part of the wire contract.
type SimilarityMatch struct {
	ID                string  `json:"id,omitempty"`
	DecisionID        string  `json:"decisionId"`
	SimilarDecisionID string  `json:"similar_decision_id"`
	SimilarityScore   float64 `json:"similarity_score"`
	Confidence        float64 `json:"confidence,omitempty"`
	Message           string  `json:"message,omitempty"`
	Timestamp         string  `json:"timestamp,omitempty"`
}

// SimilarityResponse is the response body of the similarity operation.
type SimilarityResponse struct {
	Matches []SimilarityMatch `json:"matches"`
}

// ConsequencePrediction is one predicted consequence returned by the service.
type ConsequencePrediction struct {
	ID                   string  `json:"id,omitempty"`
	DecisionID           string  `json:"decisionId"`
	PredictedConsequence string  `json:"predicted_consequence"`
	PredictionScore      float64 `json:"prediction_score"`
	Confidence           float64 `json:"confidence,omitempty"`
	Message              string  `json:"message,omitempty"`
	Timestamp            string  `json:"timestamp,omitempty"`
}

// ConsequenceResponse is the response body of the consequence operation.
type ConsequenceResponse struct {
	Consequences []ConsequencePrediction `json:"consequences"`
}
