package main

import (
	"log"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/config"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/database"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/enrichment"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/handlers"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/logging"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/repositories"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	entryRepo := repositories.NewEntryRepository(db)
	decisionRepo := repositories.NewDecisionRepository(db)
	insightRepo := repositories.NewInsightRepository(db)

	enricher, err := enrichment.NewService(&cfg.Enrichment, logger)
	if err != nil {
		logger.Fatal("Failed to build enrichment service", zap.Error(err))
	}
	engine := services.NewEngine(enricher, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAnalysisHandler(engine, entryRepo, decisionRepo, insightRepo, logger).RegisterRoutes(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting lorekeeper-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
