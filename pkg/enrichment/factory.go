package enrichment

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/config"
)

// NewService creates the configured enrichment client.
func NewService(cfg *config.EnrichmentConfig, logger *zap.Logger) (Service, error) {
	switch cfg.Provider {
	case "http", "":
		return NewHTTPClient(&HTTPConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}, logger)
	case "openai":
		return NewLLMClient(&LLMConfig{
			Endpoint: cfg.BaseURL,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown enrichment provider %q", cfg.Provider)
	}
}
