package enrichment

import "context"

// Mock is a configurable mock for testing enrichment consumers.
// Set the function fields to control behavior in tests.
type Mock struct {
	// AnalyzeSimilarityFunc is called when AnalyzeSimilarity is invoked.
	// If nil, returns an empty response and nil error.
	AnalyzeSimilarityFunc func(ctx context.Context, req *AnalysisRequest) (*SimilarityResponse, error)

	// PredictConsequencesFunc is called when PredictConsequences is invoked.
	// If nil, returns an empty response and nil error.
	PredictConsequencesFunc func(ctx context.Context, req *AnalysisRequest) (*ConsequenceResponse, error)

	// Call tracking for verification
	AnalyzeSimilarityCalls   int
	PredictConsequencesCalls int
}

// NewMock creates a new mock with empty-response defaults.
func NewMock() *Mock {
	return &Mock{}
}

// AnalyzeSimilarity implements Service.
func (m *Mock) AnalyzeSimilarity(ctx context.Context, req *AnalysisRequest) (*SimilarityResponse, error) {
	m.AnalyzeSimilarityCalls++
	if m.AnalyzeSimilarityFunc != nil {
		return m.AnalyzeSimilarityFunc(ctx, req)
	}
	return &SimilarityResponse{}, nil
}

// PredictConsequences implements Service.
func (m *Mock) PredictConsequences(ctx context.Context, req *AnalysisRequest) (*ConsequenceResponse, error) {
	m.PredictConsequencesCalls++
	if m.PredictConsequencesFunc != nil {
		return m.PredictConsequencesFunc(ctx, req)
	}
	return &ConsequenceResponse{}, nil
}
