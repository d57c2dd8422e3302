package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/apperrors"
)

// HTTPClient talks to the JSON enrichment service.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// HTTPConfig holds configuration for creating an HTTP enrichment client.
type HTTPConfig struct {
	BaseURL string        // e.g. "http://localhost:8600"
	APIKey  string        // Optional bearer token
	Timeout time.Duration // Per-call timeout; zero means no client timeout
}

// NewHTTPClient creates a client for the JSON enrichment service.
func NewHTTPClient(cfg *HTTPConfig, logger *zap.Logger) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.Named("enrichment"),
	}, nil
}

// AnalyzeSimilarity implements Service.
func (c *HTTPClient) AnalyzeSimilarity(ctx context.Context, req *AnalysisRequest) (*SimilarityResponse, error) {
	var resp SimilarityResponse
	if err := c.post(ctx, "/api/v1/similarity", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PredictConsequences implements Service.
func (c *HTTPClient) PredictConsequences(ctx context.Context, req *AnalysisRequest) (*ConsequenceResponse, error) {
	var resp ConsequenceResponse
	if err := c.post(ctx, "/api/v1/consequences", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post sends the request body and decodes the response into out. Transport
// failures and non-2xx statuses map to ErrEnrichmentUnavailable, undecodable
// bodies to ErrMalformedResponse, so callers can trigger fallback uniformly.
func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("enrichment call failed",
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrEnrichmentUnavailable, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
		c.logger.Warn("enrichment call returned non-2xx",
			zap.String("path", path),
			zap.Int("status", httpResp.StatusCode))
		return fmt.Errorf("%w: status %d", apperrors.ErrEnrichmentUnavailable, httpResp.StatusCode)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}

	c.logger.Debug("enrichment call succeeded",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
