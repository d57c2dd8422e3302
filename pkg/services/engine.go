package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/enrichment"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

// AnalysisResult is the combined output of one pipeline run.
type AnalysisResult struct {
	Decisions       []*models.Decision      `json:"decisions"`
	Insights        []models.Insight        `json:"insights"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// Engine sequences the pipeline stages over one user's entries and merges
// their outputs. Stages fail soft individually; the engine itself fails
// closed, returning the empty triple if anything escapes a stage.
type Engine struct {
	extractor    *Extractor
	outcomes     *OutcomeMapper
	patterns     *PatternDetector
	risk         *RiskAnalyzer
	similarity   *SimilarityAnalyzer
	consequences *ConsequencePredictor
	recommender  *Recommender
	logger       *zap.Logger
}

// NewEngine wires the pipeline stages around the given enrichment service.
func NewEngine(svc enrichment.Service, logger *zap.Logger) *Engine {
	return &Engine{
		extractor:    NewExtractor(logger),
		outcomes:     NewOutcomeMapper(logger),
		patterns:     NewPatternDetector(logger),
		risk:         NewRiskAnalyzer(logger),
		similarity:   NewSimilarityAnalyzer(svc, logger),
		consequences: NewConsequencePredictor(svc, logger),
		recommender:  NewRecommender(logger),
		logger:       logger.Named("decision-engine"),
	}
}

// Run executes the full pipeline for one user. Stage order matters: outcome
// mapping and similarity analysis precede risk analysis because the risk
// model reads both; pattern detection reads only extraction fields and runs
// anywhere after extraction. Insights merge in stage-declaration order
// (outcomes, risk, patterns, similarity, consequences) and every decision
// and insight is stamped with the owning user before recommendation.
func (e *Engine) Run(ctx context.Context, userID string, entries []models.JournalEntry) (result *AnalysisResult) {
	result = emptyResult()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("pipeline run failed",
				zap.String("user_id", userID),
				zap.Any("panic", r))
			result = emptyResult()
		}
	}()

	dc := buildContext(userID, entries)
	decisions := e.extractor.Extract(dc)
	if len(decisions) == 0 {
		return result
	}

	outcomeInsights := e.outcomes.MapOutcomes(decisions, dc)
	patternInsights := e.patterns.DetectPatterns(decisions)
	similarityInsights := e.similarity.AnalyzeSimilarity(ctx, decisions)
	riskInsights := e.risk.AnalyzeRisk(decisions)
	consequenceInsights := e.consequences.PredictConsequences(ctx, decisions)

	insights := make([]models.Insight, 0,
		len(outcomeInsights)+len(riskInsights)+len(patternInsights)+len(similarityInsights)+len(consequenceInsights))
	insights = append(insights, outcomeInsights...)
	insights = append(insights, riskInsights...)
	insights = append(insights, patternInsights...)
	insights = append(insights, similarityInsights...)
	insights = append(insights, consequenceInsights...)

	for _, d := range decisions {
		d.UserID = userID
	}
	for i := range insights {
		insights[i].UserID = userID
	}

	result = &AnalysisResult{
		Decisions:       decisions,
		Insights:        insights,
		Recommendations: e.recommender.GenerateRecommendations(insights),
	}

	e.logger.Info("pipeline run complete",
		zap.String("user_id", userID),
		zap.Int("entries", len(entries)),
		zap.Int("decisions", len(result.Decisions)),
		zap.Int("insights", len(result.Insights)),
		zap.Int("recommendations", len(result.Recommendations)))
	return result
}

// buildContext copies and sorts the entries ascending by date. The context
// is read-only for the rest of the run.
func buildContext(userID string, entries []models.JournalEntry) *models.DecisionContext {
	sorted := make([]models.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return &models.DecisionContext{UserID: userID, Entries: sorted}
}

func emptyResult() *AnalysisResult {
	return &AnalysisResult{
		Decisions:       []*models.Decision{},
		Insights:        []models.Insight{},
		Recommendations: []models.Recommendation{},
	}
}
