// Package config loads lorekeeper-engine configuration from YAML and
// environment variables. Environment variables always override YAML values;
// secrets (API keys) come only from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for lorekeeper-engine.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8470"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Logging configuration
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// Database configuration (SQLite)
	Database DatabaseConfig `yaml:"database"`

	// Enrichment service configuration
	Enrichment EnrichmentConfig `yaml:"enrichment"`
}

// DatabaseConfig holds SQLite database configuration.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" keeps everything in-process.
	Path string `yaml:"path" env:"DATABASE_PATH" env-default:"lorekeeper.db"`
}

// EnrichmentConfig holds configuration for the external enrichment service
// that performs heavyweight similarity and consequence inference.
type EnrichmentConfig struct {
	// Provider selects the client implementation: "http" for the JSON
	// enrichment service, "openai" for an OpenAI-compatible LLM endpoint.
	Provider string `yaml:"provider" env:"ENRICHMENT_PROVIDER" env-default:"http"`

	// BaseURL is the enrichment service base URL (both providers).
	BaseURL string `yaml:"base_url" env:"ENRICHMENT_BASE_URL" env-default:"http://localhost:8600"`

	// Model is the model name used by the "openai" provider.
	Model string `yaml:"model" env:"ENRICHMENT_MODEL" env-default:""`

	// APIKey authenticates against the enrichment endpoint. Secret - not in YAML.
	APIKey string `yaml:"-" env:"ENRICHMENT_API_KEY"`

	// TimeoutSeconds bounds each enrichment call. A failed or slow call is
	// downgraded to the local fallback heuristics, never retried.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"ENRICHMENT_TIMEOUT_SECONDS" env-default:"30"`
}

// Load reads configuration from config.yaml (if present) and the
// environment, then applies the build-time version.
func Load(version string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	}

	cfg.Version = version
	return &cfg, nil
}
