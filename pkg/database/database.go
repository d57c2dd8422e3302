// Package database opens the SQLite database and bootstraps its schema.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	content    TEXT NOT NULL,
	entry_date TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_entries_user ON journal_entries(user_id, entry_date);

CREATE TABLE IF NOT EXISTS decisions (
	id                     TEXT PRIMARY KEY,
	user_id                TEXT NOT NULL,
	description            TEXT NOT NULL,
	category               TEXT NOT NULL,
	decision_time          TIMESTAMP NOT NULL,
	context                TEXT NOT NULL DEFAULT '',
	alternatives           TEXT NOT NULL DEFAULT '[]',
	outcome                TEXT NOT NULL DEFAULT 'unknown',
	risk_level             REAL NOT NULL DEFAULT 0,
	similarity_matches     TEXT NOT NULL DEFAULT '[]',
	predicted_consequences TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_decisions_user ON decisions(user_id, category, outcome);

CREATE TABLE IF NOT EXISTS insights (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	insight_type TEXT NOT NULL,
	message      TEXT NOT NULL,
	confidence   REAL NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	decision_id  TEXT NOT NULL DEFAULT '',
	metadata     TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_insights_user ON insights(user_id);
`

// Open opens (or creates) the SQLite database at path and ensures the
// schema exists. Writes are serialized by SQLite, so the pool stays small.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return db, nil
}
