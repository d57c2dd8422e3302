package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/apperrors"
)

// LLMClient performs enrichment through an OpenAI-compatible endpoint.
// The model receives the decision set as JSON and must answer with the same
// response shapes the HTTP enrichment service produces; anything else is
// treated as a service failure so the caller falls back locally.
type LLMClient struct {
	client   *openai.Client
	endpoint string
	model    string
	logger   *zap.Logger
}

// LLMConfig holds configuration for creating an LLM enrichment client.
type LLMConfig struct {
	Endpoint string // Base URL, e.g. "https://api.openai.com/v1"
	Model    string // Model name, e.g. "gpt-4o-mini"
	APIKey   string // Optional for local endpoints
}

const similaritySystemPrompt = `You analyze personal decisions for similarity.
Given a JSON object {"decisions": [{"id", "description", "category", "outcome"}]},
find pairs of decisions that describe similar choices. Respond with JSON only:
{"matches": [{"decisionId": "...", "similar_decision_id": "...", "similarity_score": 0.0-1.0, "confidence": 0.0-1.0}]}.
Only include pairs with similarity_score >= 0.4. No prose.`

const consequenceSystemPrompt = `You predict consequences of personal decisions.
Given a JSON object {"decisions": [{"id", "description", "category", "outcome", "risk_level"}]},
predict one likely consequence per decision. Respond with JSON only:
{"consequences": [{"decisionId": "...", "predicted_consequence": "...", "prediction_score": 0.0-1.0, "confidence": 0.0-1.0}]}.
No prose.`

// NewLLMClient creates a new OpenAI-compatible enrichment client.
func NewLLMClient(cfg *LLMConfig, logger *zap.Logger) (*LLMClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &LLMClient{
		client:   openai.NewClientWithConfig(clientConfig),
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		logger:   logger.Named("enrichment-llm"),
	}, nil
}

// AnalyzeSimilarity implements Service.
func (c *LLMClient) AnalyzeSimilarity(ctx context.Context, req *AnalysisRequest) (*SimilarityResponse, error) {
	return complete[SimilarityResponse](ctx, c, similaritySystemPrompt, req)
}

// PredictConsequences implements Service.
func (c *LLMClient) PredictConsequences(ctx context.Context, req *AnalysisRequest) (*ConsequenceResponse, error) {
	return complete[ConsequenceResponse](ctx, c, consequenceSystemPrompt, req)
}

// complete sends one chat completion and decodes the JSON answer.
func complete[T any](ctx context.Context, c *LLMClient, systemPrompt string, req *AnalysisRequest) (*T, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		c.logger.Warn("LLM enrichment request failed",
			zap.String("model", c.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEnrichmentUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", apperrors.ErrMalformedResponse)
	}

	result, err := ParseJSONResponse[T](resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}

	c.logger.Debug("LLM enrichment request succeeded",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)))
	return &result, nil
}
