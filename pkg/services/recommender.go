package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

// highUrgencyRiskLevel is the risk_warning metadata threshold for high urgency.
const highUrgencyRiskLevel = 0.8

// insightTitles maps each insight type to its recommendation title.
var insightTitles = map[models.InsightType]string{
	models.InsightDecisionDetected:      "Decision Outcome Identified",
	models.InsightPatternDetected:       "Decision Pattern Found",
	models.InsightSimilarDecision:       "Similar Past Decision",
	models.InsightRiskWarning:           "Decision Risk Warning",
	models.InsightConsequencePrediction: "Predicted Consequences",
	models.InsightRecommendation:        "Decision Recommendation",
}

const defaultRecommendationTitle = "Decision Insight"

// Recommender renders insights as user-facing recommendations.
type Recommender struct {
	logger *zap.Logger
}

// NewRecommender creates a new recommender.
func NewRecommender(logger *zap.Logger) *Recommender {
	return &Recommender{logger: logger.Named("recommender")}
}

// GenerateRecommendations maps each insight to exactly one recommendation,
// preserving order. Output length always equals input length.
func (r *Recommender) GenerateRecommendations(insights []models.Insight) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, len(insights))
	for _, insight := range insights {
		recommendations = append(recommendations, models.Recommendation{
			ID:         uuid.NewString(),
			UserID:     insight.UserID,
			Title:      recommendationTitle(insight.Type),
			Type:       models.RecommendationTypeDecisionSupport,
			Confidence: insight.Confidence,
			Urgency:    recommendationUrgency(insight),
			DecisionID: insight.DecisionID,
			Message:    insight.Message,
			CreatedAt:  time.Now(),
		})
	}
	return recommendations
}

func recommendationTitle(t models.InsightType) string {
	if title, ok := insightTitles[t]; ok {
		return title
	}
	return defaultRecommendationTitle
}

// recommendationUrgency derives urgency from the insight type. Risk warnings
// split on the risk_level metadata; everything at or below 0.8 stays medium,
// there is no low urgency for that type.
func recommendationUrgency(insight models.Insight) models.Urgency {
	switch insight.Type {
	case models.InsightRiskWarning:
		if insight.Metadata.RiskLevel >= highUrgencyRiskLevel {
			return models.UrgencyHigh
		}
		return models.UrgencyMedium
	case models.InsightConsequencePrediction, models.InsightRecommendation:
		return models.UrgencyMedium
	case models.InsightPatternDetected, models.InsightSimilarDecision, models.InsightDecisionDetected:
		return models.UrgencyLow
	default:
		return models.UrgencyMedium
	}
}
