package models

import "time"

// Urgency ranks how quickly the user should act on a recommendation.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// RecommendationTypeDecisionSupport is the only recommendation type the
// decision-support pipeline produces.
const RecommendationTypeDecisionSupport = "decision_support"

// Recommendation is the user-facing rendering of an insight. Created only
// by the recommender, one per insight, and handed to the persistence sink.
type Recommendation struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Confidence float64   `json:"confidence"`
	Urgency    Urgency   `json:"urgency"`
	DecisionID string    `json:"decision_id,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
