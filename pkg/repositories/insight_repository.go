package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

// InsightRepository defines the interface for insight data access.
type InsightRepository interface {
	SaveAll(ctx context.Context, insights []models.Insight) error
	ListByUser(ctx context.Context, userID string) ([]models.Insight, error)
}

type insightRepository struct {
	db *sql.DB
}

// NewInsightRepository creates a new insight repository.
func NewInsightRepository(db *sql.DB) InsightRepository {
	return &insightRepository{db: db}
}

// SaveAll inserts the insights of one pipeline run. Insights are immutable,
// so conflicts on id are ignored.
func (r *insightRepository) SaveAll(ctx context.Context, insights []models.Insight) error {
	if len(insights) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
		INSERT INTO insights (id, user_id, insight_type, message, confidence, created_at, decision_id, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`

	for _, insight := range insights {
		metadata, err := json.Marshal(insight.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", insight.ID, err)
		}
		_, err = tx.ExecContext(ctx, query,
			insight.ID, insight.UserID, string(insight.Type), insight.Message,
			insight.Confidence, insight.Timestamp, insight.DecisionID, string(metadata))
		if err != nil {
			return fmt.Errorf("insert insight %s: %w", insight.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insights: %w", err)
	}
	return nil
}

// ListByUser returns the user's insights ordered ascending by creation time.
func (r *insightRepository) ListByUser(ctx context.Context, userID string) ([]models.Insight, error) {
	const query = `
		SELECT id, user_id, insight_type, message, confidence, created_at, decision_id, metadata
		FROM insights
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query insights: %w", err)
	}
	defer rows.Close()

	insights := make([]models.Insight, 0)
	for rows.Next() {
		var insight models.Insight
		var metadata string
		err := rows.Scan(&insight.ID, &insight.UserID, &insight.Type, &insight.Message,
			&insight.Confidence, &insight.Timestamp, &insight.DecisionID, &metadata)
		if err != nil {
			return nil, fmt.Errorf("scan insight: %w", err)
		}
		if err := json.Unmarshal([]byte(metadata), &insight.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata for %s: %w", insight.ID, err)
		}
		insights = append(insights, insight)
	}
	return insights, rows.Err()
}
