package models

import "time"

// Category classifies the life area a decision belongs to.
type Category string

// Category constants. CategoryOther is the default for anything the
// keyword tables cannot place.
const (
	CategoryCareer       Category = "career"
	CategoryFinancial    Category = "financial"
	CategoryRelationship Category = "relationship"
	CategoryHealth       Category = "health"
	CategoryEducation    Category = "education"
	CategoryLocation     Category = "location"
	CategoryFamily       Category = "family"
	CategorySocial       Category = "social"
	CategoryOther        Category = "other"
)

// Categories lists every valid category including the default.
func Categories() []Category {
	return []Category{
		CategoryCareer,
		CategoryFinancial,
		CategoryRelationship,
		CategoryHealth,
		CategoryEducation,
		CategoryLocation,
		CategoryFamily,
		CategorySocial,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryCareer, CategoryFinancial, CategoryRelationship, CategoryHealth,
		CategoryEducation, CategoryLocation, CategoryFamily, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// Outcome is the inferred result of a decision.
type Outcome string

const (
	OutcomePositive Outcome = "positive"
	OutcomeNegative Outcome = "negative"
	OutcomeNeutral  Outcome = "neutral"
	OutcomeUnknown  Outcome = "unknown"
)

// Valid reports whether o is a member of the closed outcome set.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePositive, OutcomeNegative, OutcomeNeutral, OutcomeUnknown:
		return true
	}
	return false
}

// Decision is a single choice extracted from a journal entry.
//
// The extraction fields (ID, UserID, Description, Category, Timestamp,
// Context, AlternativesConsidered) are immutable after creation. The derived
// fields (Outcome, RiskLevel, SimilarityMatches, PredictedConsequences) are
// populated progressively by later pipeline stages.
type Decision struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"user_id"`
	Description            string    `json:"description"`
	Category               Category  `json:"category"`
	Timestamp              time.Time `json:"timestamp"`
	Context                string    `json:"context,omitempty"`
	AlternativesConsidered []string  `json:"alternatives_considered,omitempty"`

	Outcome               Outcome  `json:"outcome"`
	RiskLevel             float64  `json:"risk_level"`
	SimilarityMatches     []string `json:"similarity_matches,omitempty"`
	PredictedConsequences []string `json:"predicted_consequences,omitempty"`
}

// ClampConfidence clamps v into [0, 1]. Used for risk levels and confidence
// scores so the invariant holds regardless of which stage produced the value.
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
