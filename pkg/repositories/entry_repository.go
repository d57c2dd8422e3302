// Package repositories provides SQLite-backed persistence for journal
// entries, decisions, and insights. The pipeline core never imports this
// package; wiring happens at the handler layer.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

// EntryRepository defines the interface for journal entry data access.
type EntryRepository interface {
	SaveAll(ctx context.Context, userID string, entries []models.JournalEntry) error
	ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error)
}

type entryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

// SaveAll upserts the entries for a user. Re-ingesting the same entry id is
// idempotent.
func (r *entryRepository) SaveAll(ctx context.Context, userID string, entries []models.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
		INSERT INTO journal_entries (id, user_id, content, entry_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET content = excluded.content,
		    entry_date = excluded.entry_date`

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, query, entry.ID, userID, entry.Content, entry.Date); err != nil {
			return fmt.Errorf("insert entry %s: %w", entry.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return nil
}

// ListByUser returns the user's entries ordered ascending by date.
func (r *entryRepository) ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	const query = `
		SELECT id, content, entry_date
		FROM journal_entries
		WHERE user_id = ?
		ORDER BY entry_date ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		var entry models.JournalEntry
		if err := rows.Scan(&entry.ID, &entry.Content, &entry.Date); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
