package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/repositories"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/services"
)

// AnalysisRequest is the body of POST /api/v1/users/{uid}/analysis. When
// Entries is empty the user's stored entries are analyzed instead.
type AnalysisRequest struct {
	Entries []models.JournalEntry `json:"entries"`
}

// IngestRequest is the body of POST /api/v1/users/{uid}/entries.
type IngestRequest struct {
	Entries []models.JournalEntry `json:"entries"`
}

// IngestResponse reports how many entries were stored.
type IngestResponse struct {
	Saved int `json:"saved"`
}

// AnalysisHandler exposes the decision pipeline over HTTP.
type AnalysisHandler struct {
	engine    *services.Engine
	entries   repositories.EntryRepository
	decisions repositories.DecisionRepository
	insights  repositories.InsightRepository
	logger    *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	engine *services.Engine,
	entries repositories.EntryRepository,
	decisions repositories.DecisionRepository,
	insights repositories.InsightRepository,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		engine:    engine,
		entries:   entries,
		decisions: decisions,
		insights:  insights,
		logger:    logger.Named("analysis-handler"),
	}
}

// RegisterRoutes registers the analysis handler's routes on the given mux.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/users/{uid}/analysis", h.Analyze)
	mux.HandleFunc("POST /api/v1/users/{uid}/entries", h.IngestEntries)
	mux.HandleFunc("GET /api/v1/users/{uid}/decisions", h.ListDecisions)
	mux.HandleFunc("GET /api/v1/users/{uid}/decisions/stats", h.DecisionStats)
}

// Analyze handles POST /api/v1/users/{uid}/analysis.
// Runs the pipeline over the submitted entries (or the user's stored entries
// when none are submitted), persists the results, and returns them.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	entries := req.Entries
	if len(entries) == 0 {
		stored, err := h.entries.ListByUser(r.Context(), userID)
		if err != nil {
			h.logger.Error("Failed to load stored entries", zap.String("user_id", userID), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to load entries")
			return
		}
		entries = stored
	} else {
		assignEntryIDs(entries)
		if err := h.entries.SaveAll(r.Context(), userID, entries); err != nil {
			h.logger.Error("Failed to save entries", zap.String("user_id", userID), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to save entries")
			return
		}
	}

	result := h.engine.Run(r.Context(), userID, entries)

	if err := h.decisions.UpsertAll(r.Context(), result.Decisions); err != nil {
		h.logger.Error("Failed to persist decisions", zap.String("user_id", userID), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to persist decisions")
		return
	}
	if err := h.insights.SaveAll(r.Context(), result.Insights); err != nil {
		h.logger.Error("Failed to persist insights", zap.String("user_id", userID), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to persist insights")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode analysis response", zap.Error(err))
	}
}

// IngestEntries handles POST /api/v1/users/{uid}/entries.
func (h *AnalysisHandler) IngestEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if len(req.Entries) == 0 {
		h.writeError(w, http.StatusBadRequest, "no_entries", "At least one entry is required")
		return
	}

	assignEntryIDs(req.Entries)
	if err := h.entries.SaveAll(r.Context(), userID, req.Entries); err != nil {
		h.logger.Error("Failed to save entries", zap.String("user_id", userID), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to save entries")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, IngestResponse{Saved: len(req.Entries)}); err != nil {
		h.logger.Error("Failed to encode ingest response", zap.Error(err))
	}
}

// ListDecisions handles GET /api/v1/users/{uid}/decisions.
// Supports optional category and outcome query filters.
func (h *AnalysisHandler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	filter := repositories.DecisionFilter{}
	if c := r.URL.Query().Get("category"); c != "" {
		category := models.Category(c)
		if !category.Valid() {
			h.writeError(w, http.StatusBadRequest, "invalid_category", "Unknown decision category")
			return
		}
		filter.Category = category
	}
	if o := r.URL.Query().Get("outcome"); o != "" {
		outcome := models.Outcome(o)
		if !outcome.Valid() {
			h.writeError(w, http.StatusBadRequest, "invalid_outcome", "Unknown decision outcome")
			return
		}
		filter.Outcome = outcome
	}

	decisions, err := h.decisions.ListByUser(r.Context(), userID, filter)
	if err != nil {
		h.logger.Error("Failed to list decisions", zap.String("user_id", userID), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to list decisions")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"decisions": decisions}); err != nil {
		h.logger.Error("Failed to encode decisions response", zap.Error(err))
	}
}

// DecisionStats handles GET /api/v1/users/{uid}/decisions/stats.
func (h *AnalysisHandler) DecisionStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	stats, err := h.decisions.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to compute decision stats", zap.String("user_id", userID), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to compute stats")
		return
	}

	if err := WriteJSON(w, http.StatusOK, stats); err != nil {
		h.logger.Error("Failed to encode stats response", zap.Error(err))
	}
}

func (h *AnalysisHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// assignEntryIDs fills in ids for entries submitted without one.
func assignEntryIDs(entries []models.JournalEntry) {
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
	}
}
