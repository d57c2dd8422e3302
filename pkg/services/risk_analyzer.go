package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

const (
	baseRisk              = 0.5
	riskWarningThreshold  = 0.7
	riskWarningConfidence = 0.9
)

// categoryRiskOffsets are added to the base risk per category.
var categoryRiskOffsets = map[models.Category]float64{
	models.CategoryFinancial:    0.20,
	models.CategoryCareer:       0.15,
	models.CategoryRelationship: 0.15,
	models.CategoryLocation:     0.10,
	models.CategoryHealth:       0.10,
	models.CategoryFamily:       0.10,
	models.CategoryEducation:    0.05,
	models.CategorySocial:       0.0,
	models.CategoryOther:        0.0,
}

// highImpactCategories are the only categories named as a risk factor.
var highImpactCategories = map[models.Category]bool{
	models.CategoryFinancial:    true,
	models.CategoryCareer:       true,
	models.CategoryRelationship: true,
}

var highRiskWords = []string{"risk", "dangerous", "risky", "uncertain", "gamble", "bet", "all-in"}
var lowRiskWords = []string{"safe", "sure", "certain", "guaranteed", "secure"}

// RiskAnalyzer computes a bounded risk score per decision and emits warnings
// for decisions at or above the warning threshold.
type RiskAnalyzer struct {
	logger *zap.Logger
}

// NewRiskAnalyzer creates a new risk analyzer.
func NewRiskAnalyzer(logger *zap.Logger) *RiskAnalyzer {
	return &RiskAnalyzer{logger: logger.Named("risk-analyzer")}
}

// AnalyzeRisk sets RiskLevel on every decision and returns a risk_warning
// insight for each one whose risk reaches the threshold. Runs after outcome
// mapping and similarity analysis, since both feed the score.
func (a *RiskAnalyzer) AnalyzeRisk(decisions []*models.Decision) []models.Insight {
	insights := make([]models.Insight, 0)

	for _, d := range decisions {
		risk := a.computeRisk(d)
		d.RiskLevel = risk
		if risk < riskWarningThreshold {
			continue
		}

		factors := riskFactors(d)
		insights = append(insights, models.Insight{
			ID:         uuid.NewString(),
			Type:       models.InsightRiskWarning,
			Message:    fmt.Sprintf("High-risk decision detected: %q (risk %.2f)", truncateRunes(d.Description, 50), risk),
			Confidence: riskWarningConfidence,
			Timestamp:  time.Now(),
			DecisionID: d.ID,
			Metadata: models.InsightMetadata{
				RiskLevel:   risk,
				RiskFactors: factors,
			},
		})
	}
	return insights
}

// computeRisk applies the additive model and clamps the result to [0, 1].
// The high-risk and low-risk keyword checks are intentionally independent;
// a description can trigger both.
func (a *RiskAnalyzer) computeRisk(d *models.Decision) float64 {
	risk := baseRisk

	switch d.Outcome {
	case models.OutcomeNegative:
		risk += 0.3
	case models.OutcomePositive:
		risk -= 0.2
	}

	risk += categoryRiskOffsets[d.Category]

	if len(d.SimilarityMatches) > 0 {
		risk += 0.1
	}

	lower := strings.ToLower(d.Description)
	if containsAny(lower, highRiskWords) {
		risk += 0.2
	}
	if containsAny(lower, lowRiskWords) {
		risk -= 0.15
	}

	switch {
	case len(d.AlternativesConsidered) >= 3:
		risk -= 0.1
	case len(d.AlternativesConsidered) == 0:
		risk += 0.1
	}

	return models.ClampConfidence(risk)
}

// riskFactors lists the warning's explanations in fixed order, each included
// only when its triggering condition holds.
func riskFactors(d *models.Decision) []string {
	var factors []string
	if d.Outcome == models.OutcomeNegative {
		factors = append(factors, "previous negative outcome")
	}
	if highImpactCategories[d.Category] {
		factors = append(factors, "high-impact category")
	}
	if len(d.AlternativesConsidered) == 0 {
		factors = append(factors, "no alternatives considered")
	}
	if containsAny(strings.ToLower(d.Description), highRiskWords) {
		factors = append(factors, "description mentions risk or uncertainty")
	}
	return factors
}
