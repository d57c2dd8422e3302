package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/enrichment"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

const (
	similarityDefaultConfidence  = 0.6
	similarityFallbackConfidence = 0.5
	// fallbackLengthRatio: two descriptions count as similar when their
	// length difference is under 20% of their average length.
	fallbackLengthRatio = 0.2
)

// SimilarityAnalyzer links decisions that resemble each other. The primary
// path asks the enrichment service; on any failure it degrades to a local
// length/category heuristic and the run continues.
type SimilarityAnalyzer struct {
	svc    enrichment.Service
	logger *zap.Logger
}

// NewSimilarityAnalyzer creates a new similarity analyzer.
func NewSimilarityAnalyzer(svc enrichment.Service, logger *zap.Logger) *SimilarityAnalyzer {
	return &SimilarityAnalyzer{svc: svc, logger: logger.Named("similarity-analyzer")}
}

// AnalyzeSimilarity appends similarity matches to the decisions and returns
// one similar_decision insight per match (per decision on the fallback
// path). Zero decisions means zero service calls and zero insights; errors
// never escape.
func (a *SimilarityAnalyzer) AnalyzeSimilarity(ctx context.Context, decisions []*models.Decision) []models.Insight {
	insights := make([]models.Insight, 0)
	if len(decisions) == 0 {
		return insights
	}

	resp, err := a.svc.AnalyzeSimilarity(ctx, enrichment.NewAnalysisRequest(decisions))
	if err != nil {
		a.logger.Warn("similarity enrichment failed, using local fallback", zap.Error(err))
		return a.fallback(decisions)
	}

	byID := indexDecisions(decisions)
	for _, match := range resp.Matches {
		d, ok := byID[match.DecisionID]
		if !ok {
			continue
		}
		d.SimilarityMatches = append(d.SimilarityMatches, match.SimilarDecisionID)

		confidence := match.Confidence
		if confidence == 0 {
			confidence = similarityDefaultConfidence
		}
		message := match.Message
		if message == "" {
			message = fmt.Sprintf("Decision %q resembles another of your decisions", truncateRunes(d.Description, 50))
		}

		insights = append(insights, models.Insight{
			ID:         uuid.NewString(),
			Type:       models.InsightSimilarDecision,
			Message:    message,
			Confidence: confidence,
			Timestamp:  time.Now(),
			DecisionID: d.ID,
			Metadata: models.InsightMetadata{
				SimilarDecisionID: match.SimilarDecisionID,
				SimilarityScore:   match.SimilarityScore,
			},
		})
	}
	return insights
}

// fallback pairs decisions that share a category and have descriptions of
// comparable length.
func (a *SimilarityAnalyzer) fallback(decisions []*models.Decision) []models.Insight {
	matches := make(map[string][]string)
	for i := 0; i < len(decisions); i++ {
		for j := i + 1; j < len(decisions); j++ {
			d1, d2 := decisions[i], decisions[j]
			if d1.Category == "" || d1.Category != d2.Category {
				continue
			}
			l1, l2 := len(d1.Description), len(d2.Description)
			avg := float64(l1+l2) / 2
			if avg == 0 || math.Abs(float64(l1-l2)) >= fallbackLengthRatio*avg {
				continue
			}
			matches[d1.ID] = append(matches[d1.ID], d2.ID)
			matches[d2.ID] = append(matches[d2.ID], d1.ID)
		}
	}

	insights := make([]models.Insight, 0)
	for _, d := range decisions {
		similar := matches[d.ID]
		if len(similar) == 0 {
			continue
		}
		d.SimilarityMatches = append(d.SimilarityMatches, similar...)

		insights = append(insights, models.Insight{
			ID:         uuid.NewString(),
			Type:       models.InsightSimilarDecision,
			Message:    fmt.Sprintf("Found %d similar decision(s) for %q", len(similar), truncateRunes(d.Description, 50)),
			Confidence: similarityFallbackConfidence,
			Timestamp:  time.Now(),
			DecisionID: d.ID,
			Metadata: models.InsightMetadata{
				SimilarDecisionID: similar[0],
				Method:            models.MethodFallback,
			},
		})
	}
	return insights
}

func indexDecisions(decisions []*models.Decision) map[string]*models.Decision {
	byID := make(map[string]*models.Decision, len(decisions))
	for _, d := range decisions {
		byID[d.ID] = d
	}
	return byID
}
