package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/enrichment"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

const (
	consequenceDefaultConfidence  = 0.7
	consequenceFallbackConfidence = 0.6
	highRiskBand                  = 0.7
	lowRiskBand                   = 0.3
)

// categoryConsequences backs the fallback prediction for mid-band risk.
var categoryConsequences = map[models.Category]string{
	models.CategoryCareer:       "May impact professional growth and opportunities",
	models.CategoryFinancial:    "Could affect financial stability and resources",
	models.CategoryRelationship: "May influence relationship dynamics and connections",
	models.CategoryHealth:       "Could impact physical or mental well-being",
	models.CategoryEducation:    "May affect learning and skill development",
	models.CategoryLocation:     "Could change daily routine and environment",
	models.CategoryFamily:       "May influence family relationships and dynamics",
	models.CategorySocial:       "Could affect social connections and activities",
}

const defaultConsequence = "Mixed outcomes possible"

// ConsequencePredictor attaches predicted consequences to decisions. The
// primary path asks the enrichment service; on any failure it degrades to a
// local risk/category heuristic.
type ConsequencePredictor struct {
	svc    enrichment.Service
	logger *zap.Logger
}

// NewConsequencePredictor creates a new consequence predictor.
func NewConsequencePredictor(svc enrichment.Service, logger *zap.Logger) *ConsequencePredictor {
	return &ConsequencePredictor{svc: svc, logger: logger.Named("consequence-predictor")}
}

// PredictConsequences appends predicted consequences to the decisions and
// returns one consequence_prediction insight per prediction. Zero decisions
// means zero service calls and zero insights; errors never escape.
func (p *ConsequencePredictor) PredictConsequences(ctx context.Context, decisions []*models.Decision) []models.Insight {
	insights := make([]models.Insight, 0)
	if len(decisions) == 0 {
		return insights
	}

	resp, err := p.svc.PredictConsequences(ctx, enrichment.NewAnalysisRequest(decisions))
	if err != nil {
		p.logger.Warn("consequence enrichment failed, using local fallback", zap.Error(err))
		return p.fallback(decisions)
	}

	byID := indexDecisions(decisions)
	for _, prediction := range resp.Consequences {
		d, ok := byID[prediction.DecisionID]
		if !ok {
			continue
		}
		d.PredictedConsequences = append(d.PredictedConsequences, prediction.PredictedConsequence)

		confidence := prediction.Confidence
		if confidence == 0 {
			confidence = consequenceDefaultConfidence
		}
		message := prediction.Message
		if message == "" {
			message = fmt.Sprintf("Predicted outcome for %q: %s", truncateRunes(d.Description, 50), prediction.PredictedConsequence)
		}

		insights = append(insights, models.Insight{
			ID:         uuid.NewString(),
			Type:       models.InsightConsequencePrediction,
			Message:    message,
			Confidence: confidence,
			Timestamp:  time.Now(),
			DecisionID: d.ID,
			Metadata: models.InsightMetadata{
				PredictedConsequence: prediction.PredictedConsequence,
				PredictionScore:      prediction.PredictionScore,
			},
		})
	}
	return insights
}

// fallback predicts from the risk band, with a category lookup for the
// middle band.
func (p *ConsequencePredictor) fallback(decisions []*models.Decision) []models.Insight {
	insights := make([]models.Insight, 0, len(decisions))
	for _, d := range decisions {
		predicted := fallbackConsequence(d)
		d.PredictedConsequences = append(d.PredictedConsequences, predicted)

		insights = append(insights, models.Insight{
			ID:         uuid.NewString(),
			Type:       models.InsightConsequencePrediction,
			Message:    fmt.Sprintf("Predicted outcome for %q: %s", truncateRunes(d.Description, 50), predicted),
			Confidence: consequenceFallbackConfidence,
			Timestamp:  time.Now(),
			DecisionID: d.ID,
			Metadata: models.InsightMetadata{
				PredictedConsequence: predicted,
				Method:               models.MethodFallback,
			},
		})
	}
	return insights
}

func fallbackConsequence(d *models.Decision) string {
	switch {
	case d.RiskLevel >= highRiskBand:
		return "Potential negative consequences"
	case d.RiskLevel <= lowRiskBand:
		return "Likely positive outcomes"
	}
	if msg, ok := categoryConsequences[d.Category]; ok {
		return msg
	}
	return defaultConsequence
}
