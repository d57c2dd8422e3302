package enrichment

import "context"

// Service defines the enrichment operations the pipeline consumes.
// Use this interface for dependency injection to enable mocking in tests.
type Service interface {
	// AnalyzeSimilarity returns similarity links between the submitted decisions.
	AnalyzeSimilarity(ctx context.Context, req *AnalysisRequest) (*SimilarityResponse, error)

	// PredictConsequences returns predicted consequences for the submitted decisions.
	PredictConsequences(ctx context.Context, req *AnalysisRequest) (*ConsequenceResponse, error)
}

// Ensure the concrete clients implement Service at compile time.
var (
	_ Service = (*HTTPClient)(nil)
	_ Service = (*LLMClient)(nil)
	_ Service = (*Mock)(nil)
)
