package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

// highRiskFloor is the risk level counted as high risk in aggregates.
const highRiskFloor = 0.7

// DecisionFilter narrows ListByUser results. Zero values mean no filter.
type DecisionFilter struct {
	Category models.Category
	Outcome  models.Outcome
}

// DecisionRepository defines the interface for decision data access.
type DecisionRepository interface {
	UpsertAll(ctx context.Context, decisions []*models.Decision) error
	ListByUser(ctx context.Context, userID string, filter DecisionFilter) ([]*models.Decision, error)
	Stats(ctx context.Context, userID string) (*models.DecisionStats, error)
}

type decisionRepository struct {
	db *sql.DB
}

// NewDecisionRepository creates a new decision repository.
func NewDecisionRepository(db *sql.DB) DecisionRepository {
	return &decisionRepository{db: db}
}

// UpsertAll writes the decisions of one pipeline run. Decision ids are
// stable across enrichment passes, so re-running a pipeline overwrites the
// derived fields in place.
func (r *decisionRepository) UpsertAll(ctx context.Context, decisions []*models.Decision) error {
	if len(decisions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
		INSERT INTO decisions (id, user_id, description, category, decision_time, context,
			alternatives, outcome, risk_level, similarity_matches, predicted_consequences)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET outcome = excluded.outcome,
		    risk_level = excluded.risk_level,
		    similarity_matches = excluded.similarity_matches,
		    predicted_consequences = excluded.predicted_consequences`

	for _, d := range decisions {
		alternatives, err := marshalStrings(d.AlternativesConsidered)
		if err != nil {
			return fmt.Errorf("marshal alternatives for %s: %w", d.ID, err)
		}
		matches, err := marshalStrings(d.SimilarityMatches)
		if err != nil {
			return fmt.Errorf("marshal similarity matches for %s: %w", d.ID, err)
		}
		consequences, err := marshalStrings(d.PredictedConsequences)
		if err != nil {
			return fmt.Errorf("marshal consequences for %s: %w", d.ID, err)
		}

		_, err = tx.ExecContext(ctx, query,
			d.ID, d.UserID, d.Description, string(d.Category), d.Timestamp, d.Context,
			alternatives, string(d.Outcome), d.RiskLevel, matches, consequences)
		if err != nil {
			return fmt.Errorf("upsert decision %s: %w", d.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit decisions: %w", err)
	}
	return nil
}

// ListByUser returns the user's decisions, optionally filtered by category
// and outcome, ordered ascending by decision time.
func (r *decisionRepository) ListByUser(ctx context.Context, userID string, filter DecisionFilter) ([]*models.Decision, error) {
	query := `
		SELECT id, user_id, description, category, decision_time, context,
			alternatives, outcome, risk_level, similarity_matches, predicted_consequences
		FROM decisions
		WHERE user_id = ?`
	args := []any{userID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filter.Category))
	}
	if filter.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, string(filter.Outcome))
	}
	query += " ORDER BY decision_time ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	decisions := make([]*models.Decision, 0)
	for rows.Next() {
		var d models.Decision
		var alternatives, matches, consequences string
		err := rows.Scan(&d.ID, &d.UserID, &d.Description, &d.Category, &d.Timestamp, &d.Context,
			&alternatives, &d.Outcome, &d.RiskLevel, &matches, &consequences)
		if err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if err := unmarshalStrings(alternatives, &d.AlternativesConsidered); err != nil {
			return nil, fmt.Errorf("unmarshal alternatives for %s: %w", d.ID, err)
		}
		if err := unmarshalStrings(matches, &d.SimilarityMatches); err != nil {
			return nil, fmt.Errorf("unmarshal similarity matches for %s: %w", d.ID, err)
		}
		if err := unmarshalStrings(consequences, &d.PredictedConsequences); err != nil {
			return nil, fmt.Errorf("unmarshal consequences for %s: %w", d.ID, err)
		}
		decisions = append(decisions, &d)
	}
	return decisions, rows.Err()
}

// Stats aggregates the user's stored decisions: counts by outcome and
// category, average risk, and the number of high-risk decisions.
func (r *decisionRepository) Stats(ctx context.Context, userID string) (*models.DecisionStats, error) {
	stats := &models.DecisionStats{
		ByOutcome:  make(map[models.Outcome]int),
		ByCategory: make(map[models.Category]int),
	}

	const query = `
		SELECT category, outcome, risk_level
		FROM decisions
		WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query decision stats: %w", err)
	}
	defer rows.Close()

	var riskSum float64
	for rows.Next() {
		var category models.Category
		var outcome models.Outcome
		var risk float64
		if err := rows.Scan(&category, &outcome, &risk); err != nil {
			return nil, fmt.Errorf("scan decision stats: %w", err)
		}
		stats.Total++
		stats.ByCategory[category]++
		stats.ByOutcome[outcome]++
		riskSum += risk
		if risk >= highRiskFloor {
			stats.HighRiskCount++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		stats.AverageRisk = riskSum / float64(stats.Total)
	}
	return stats, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string, target *[]string) error {
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return err
	}
	if len(values) > 0 {
		*target = values
	}
	return nil
}
