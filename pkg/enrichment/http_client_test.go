package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(&HTTPConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func TestHTTPClientAnalyzeSimilarity(t *testing.T) {
	var gotPath string
	var gotReq AnalysisRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(SimilarityResponse{Matches: []SimilarityMatch{
			{DecisionID: "d1", SimilarDecisionID: "d2", SimilarityScore: 0.82, Confidence: 0.75},
		}})
	})

	req := &AnalysisRequest{Decisions: []DecisionSummary{
		{ID: "d1", Description: "quit my job", Category: "career"},
		{ID: "d2", Description: "leave my job", Category: "career"},
	}}
	resp, err := client.AnalyzeSimilarity(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/similarity", gotPath)
	assert.Len(t, gotReq.Decisions, 2)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "d2", resp.Matches[0].SimilarDecisionID)
	assert.Equal(t, 0.82, resp.Matches[0].SimilarityScore)
}

func TestHTTPClientPredictConsequences(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/consequences", r.URL.Path)
		_ = json.NewEncoder(w).Encode(ConsequenceResponse{Consequences: []ConsequencePrediction{
			{DecisionID: "d1", PredictedConsequence: "May impact professional growth", PredictionScore: 0.6},
		}})
	})

	resp, err := client.PredictConsequences(context.Background(), &AnalysisRequest{
		Decisions: []DecisionSummary{{ID: "d1", Description: "quit my job", Category: "career"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Consequences, 1)
	assert.Equal(t, "d1", resp.Consequences[0].DecisionID)
}

func TestHTTPClientNon2xxIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.AnalyzeSimilarity(context.Background(), &AnalysisRequest{})
	assert.ErrorIs(t, err, apperrors.ErrEnrichmentUnavailable)
}

func TestHTTPClientBadJSONIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.PredictConsequences(context.Background(), &AnalysisRequest{})
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
}

func TestHTTPClientTransportErrorIsUnavailable(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.AnalyzeSimilarity(context.Background(), &AnalysisRequest{})
	assert.ErrorIs(t, err, apperrors.ErrEnrichmentUnavailable)
}

func TestHTTPClientSendsAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(SimilarityResponse{})
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(&HTTPConfig{BaseURL: server.URL, APIKey: "sekrit"}, zap.NewNop())
	require.NoError(t, err)

	_, err = client.AnalyzeSimilarity(context.Background(), &AnalysisRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", gotAuth)
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(&HTTPConfig{}, zap.NewNop())
	assert.Error(t, err)
}
