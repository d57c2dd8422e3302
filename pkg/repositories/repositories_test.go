package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/database"
	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestEntryRepositoryRoundTrip(t *testing.T) {
	repo := NewEntryRepository(testDB(t))
	ctx := context.Background()

	entries := []models.JournalEntry{
		{ID: "e2", Content: "second", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "e1", Content: "first", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, repo.SaveAll(ctx, "u1", entries))

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered ascending by date regardless of insert order.
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e2", got[1].ID)

	other, err := repo.ListByUser(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestEntryRepositorySaveAllIdempotent(t *testing.T) {
	repo := NewEntryRepository(testDB(t))
	ctx := context.Background()

	entry := models.JournalEntry{ID: "e1", Content: "v1", Date: time.Now().UTC()}
	require.NoError(t, repo.SaveAll(ctx, "u1", []models.JournalEntry{entry}))

	entry.Content = "v2"
	require.NoError(t, repo.SaveAll(ctx, "u1", []models.JournalEntry{entry}))

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].Content)
}

func TestDecisionRepositoryRoundTrip(t *testing.T) {
	repo := NewDecisionRepository(testDB(t))
	ctx := context.Background()

	decision := &models.Decision{
		ID:                     "d1",
		UserID:                 "u1",
		Description:            "quit my job for a startup",
		Category:               models.CategoryCareer,
		Timestamp:              time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Context:                "I decided to quit my job for a startup",
		AlternativesConsidered: []string{"stay at current company"},
		Outcome:                models.OutcomePositive,
		RiskLevel:              0.55,
		SimilarityMatches:      []string{"d2"},
		PredictedConsequences:  []string{"May impact professional growth and opportunities"},
	}
	require.NoError(t, repo.UpsertAll(ctx, []*models.Decision{decision}))

	got, err := repo.ListByUser(ctx, "u1", DecisionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, decision.Description, got[0].Description)
	assert.Equal(t, decision.AlternativesConsidered, got[0].AlternativesConsidered)
	assert.Equal(t, decision.SimilarityMatches, got[0].SimilarityMatches)
	assert.Equal(t, decision.PredictedConsequences, got[0].PredictedConsequences)
	assert.Equal(t, 0.55, got[0].RiskLevel)
}

func TestDecisionRepositoryUpsertOverwritesDerivedFields(t *testing.T) {
	repo := NewDecisionRepository(testDB(t))
	ctx := context.Background()

	decision := &models.Decision{
		ID: "d1", UserID: "u1", Description: "quit my job",
		Category: models.CategoryCareer, Timestamp: time.Now().UTC(),
		Outcome: models.OutcomeUnknown, RiskLevel: 0.5,
	}
	require.NoError(t, repo.UpsertAll(ctx, []*models.Decision{decision}))

	decision.Outcome = models.OutcomePositive
	decision.RiskLevel = 0.35
	require.NoError(t, repo.UpsertAll(ctx, []*models.Decision{decision}))

	got, err := repo.ListByUser(ctx, "u1", DecisionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.OutcomePositive, got[0].Outcome)
	assert.Equal(t, 0.35, got[0].RiskLevel)
}

func TestDecisionRepositoryFilters(t *testing.T) {
	repo := NewDecisionRepository(testDB(t))
	ctx := context.Background()

	decisions := []*models.Decision{
		{ID: "d1", UserID: "u1", Description: "a", Category: models.CategoryCareer, Timestamp: time.Now().UTC(), Outcome: models.OutcomePositive},
		{ID: "d2", UserID: "u1", Description: "b", Category: models.CategoryCareer, Timestamp: time.Now().UTC(), Outcome: models.OutcomeNegative},
		{ID: "d3", UserID: "u1", Description: "c", Category: models.CategoryHealth, Timestamp: time.Now().UTC(), Outcome: models.OutcomePositive},
	}
	require.NoError(t, repo.UpsertAll(ctx, decisions))

	byCategory, err := repo.ListByUser(ctx, "u1", DecisionFilter{Category: models.CategoryCareer})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	byBoth, err := repo.ListByUser(ctx, "u1", DecisionFilter{Category: models.CategoryCareer, Outcome: models.OutcomeNegative})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "d2", byBoth[0].ID)
}

func TestDecisionRepositoryStats(t *testing.T) {
	repo := NewDecisionRepository(testDB(t))
	ctx := context.Background()

	decisions := []*models.Decision{
		{ID: "d1", UserID: "u1", Description: "a", Category: models.CategoryCareer, Timestamp: time.Now().UTC(), Outcome: models.OutcomePositive, RiskLevel: 0.4},
		{ID: "d2", UserID: "u1", Description: "b", Category: models.CategoryFinancial, Timestamp: time.Now().UTC(), Outcome: models.OutcomeNegative, RiskLevel: 0.9},
		{ID: "d3", UserID: "u1", Description: "c", Category: models.CategoryFinancial, Timestamp: time.Now().UTC(), Outcome: models.OutcomeNegative, RiskLevel: 0.8},
		{ID: "d4", UserID: "u2", Description: "someone else", Category: models.CategoryOther, Timestamp: time.Now().UTC(), Outcome: models.OutcomeUnknown, RiskLevel: 0.1},
	}
	require.NoError(t, repo.UpsertAll(ctx, decisions))

	stats, err := repo.Stats(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByOutcome[models.OutcomeNegative])
	assert.Equal(t, 1, stats.ByOutcome[models.OutcomePositive])
	assert.Equal(t, 2, stats.ByCategory[models.CategoryFinancial])
	assert.InDelta(t, 0.7, stats.AverageRisk, 1e-9)
	assert.Equal(t, 2, stats.HighRiskCount)
}

func TestDecisionRepositoryStatsEmpty(t *testing.T) {
	repo := NewDecisionRepository(testDB(t))

	stats, err := repo.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AverageRisk)
}

func TestInsightRepositoryRoundTrip(t *testing.T) {
	repo := NewInsightRepository(testDB(t))
	ctx := context.Background()

	insights := []models.Insight{
		{
			ID: "i1", UserID: "u1", Type: models.InsightRiskWarning,
			Message: "High-risk decision detected", Confidence: 0.9,
			Timestamp: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), DecisionID: "d1",
			Metadata: models.InsightMetadata{RiskLevel: 0.85, RiskFactors: []string{"no alternatives considered"}},
		},
		{
			ID: "i2", UserID: "u1", Type: models.InsightConsequencePrediction,
			Message: "Predicted outcome", Confidence: 0.6,
			Timestamp: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), DecisionID: "d1",
			Metadata: models.InsightMetadata{PredictedConsequence: "Mixed outcomes possible", Method: models.MethodFallback},
		},
	}
	require.NoError(t, repo.SaveAll(ctx, insights))

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.InsightRiskWarning, got[0].Type)
	assert.Equal(t, 0.85, got[0].Metadata.RiskLevel)
	assert.Equal(t, []string{"no alternatives considered"}, got[0].Metadata.RiskFactors)
	assert.Equal(t, models.MethodFallback, got[1].Metadata.Method)
}

func TestInsightRepositoryDuplicateInsertIgnored(t *testing.T) {
	repo := NewInsightRepository(testDB(t))
	ctx := context.Background()

	insight := models.Insight{ID: "i1", UserID: "u1", Type: models.InsightPatternDetected, Message: "m", Confidence: 0.8, Timestamp: time.Now().UTC()}
	require.NoError(t, repo.SaveAll(ctx, []models.Insight{insight}))
	require.NoError(t, repo.SaveAll(ctx, []models.Insight{insight}))

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
