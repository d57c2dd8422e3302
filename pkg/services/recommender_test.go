package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

func TestRecommenderOneToOneMapping(t *testing.T) {
	recommender := NewRecommender(zap.NewNop())

	insights := []models.Insight{
		{ID: "i1", Type: models.InsightDecisionDetected, Message: "m1", Confidence: 0.8, DecisionID: "d1"},
		{ID: "i2", Type: models.InsightRiskWarning, Message: "m2", Confidence: 0.9, DecisionID: "d1"},
		{ID: "i3", Type: models.InsightPatternDetected, Message: "m3", Confidence: 0.85},
	}

	recommendations := recommender.GenerateRecommendations(insights)

	require.Len(t, recommendations, len(insights))
	for i, rec := range recommendations {
		assert.Equal(t, models.RecommendationTypeDecisionSupport, rec.Type)
		assert.Equal(t, insights[i].Message, rec.Message)
		assert.Equal(t, insights[i].Confidence, rec.Confidence)
		assert.Equal(t, insights[i].DecisionID, rec.DecisionID)
	}
}

func TestRecommenderTitles(t *testing.T) {
	recommender := NewRecommender(zap.NewNop())

	tests := []struct {
		insightType models.InsightType
		wantTitle   string
	}{
		{models.InsightDecisionDetected, "Decision Outcome Identified"},
		{models.InsightPatternDetected, "Decision Pattern Found"},
		{models.InsightSimilarDecision, "Similar Past Decision"},
		{models.InsightRiskWarning, "Decision Risk Warning"},
		{models.InsightConsequencePrediction, "Predicted Consequences"},
		{models.InsightRecommendation, "Decision Recommendation"},
		{models.InsightType("mystery"), "Decision Insight"},
	}

	for _, tt := range tests {
		t.Run(string(tt.insightType), func(t *testing.T) {
			recs := recommender.GenerateRecommendations([]models.Insight{{Type: tt.insightType}})
			require.Len(t, recs, 1)
			assert.Equal(t, tt.wantTitle, recs[0].Title)
		})
	}
}

func TestRecommenderUrgency(t *testing.T) {
	recommender := NewRecommender(zap.NewNop())

	tests := []struct {
		name    string
		insight models.Insight
		want    models.Urgency
	}{
		{
			name:    "risk warning at 0.8 is high",
			insight: models.Insight{Type: models.InsightRiskWarning, Metadata: models.InsightMetadata{RiskLevel: 0.8}},
			want:    models.UrgencyHigh,
		},
		{
			name:    "risk warning below 0.8 is medium",
			insight: models.Insight{Type: models.InsightRiskWarning, Metadata: models.InsightMetadata{RiskLevel: 0.75}},
			want:    models.UrgencyMedium,
		},
		{
			name:    "consequence prediction is medium",
			insight: models.Insight{Type: models.InsightConsequencePrediction},
			want:    models.UrgencyMedium,
		},
		{
			name:    "recommendation is medium",
			insight: models.Insight{Type: models.InsightRecommendation},
			want:    models.UrgencyMedium,
		},
		{
			name:    "pattern is low",
			insight: models.Insight{Type: models.InsightPatternDetected},
			want:    models.UrgencyLow,
		},
		{
			name:    "similar decision is low",
			insight: models.Insight{Type: models.InsightSimilarDecision},
			want:    models.UrgencyLow,
		},
		{
			name:    "decision detected is low",
			insight: models.Insight{Type: models.InsightDecisionDetected},
			want:    models.UrgencyLow,
		},
		{
			name:    "unknown type is medium",
			insight: models.Insight{Type: models.InsightType("mystery")},
			want:    models.UrgencyMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := recommender.GenerateRecommendations([]models.Insight{tt.insight})
			require.Len(t, recs, 1)
			assert.Equal(t, tt.want, recs[0].Urgency)
		})
	}
}

func TestRecommenderEmptyInput(t *testing.T) {
	recommender := NewRecommender(zap.NewNop())
	assert.Empty(t, recommender.GenerateRecommendations(nil))
}
