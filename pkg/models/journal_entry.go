// Package models contains domain types for lorekeeper-engine.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/apperrors"
)

// JournalEntry is a single free-text journal entry as received from the
// entry source. Entries are read-only once a pipeline run starts.
type JournalEntry struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// journalEntryWire mirrors the loose shapes entry sources produce: the text
// may arrive under "content" or "text", the date under "date", "created_at"
// or "timestamp" (read in that priority order).
type journalEntryWire struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
	Timestamp string `json:"timestamp"`
}

// entryDateFormats are tried in order when parsing entry dates.
var entryDateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts the field aliases used by the various entry sources.
func (e *JournalEntry) UnmarshalJSON(data []byte) error {
	var wire journalEntryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	e.ID = wire.ID
	e.Content = wire.Content
	if e.Content == "" {
		e.Content = wire.Text
	}

	raw := wire.Date
	if raw == "" {
		raw = wire.CreatedAt
	}
	if raw == "" {
		raw = wire.Timestamp
	}
	if raw == "" {
		e.Date = time.Time{}
		return nil
	}

	parsed, err := ParseEntryDate(raw)
	if err != nil {
		return fmt.Errorf("parse entry date %q: %w", raw, err)
	}
	e.Date = parsed
	return nil
}

// ParseEntryDate parses an entry date in any of the supported formats.
func ParseEntryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range entryDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %w", apperrors.ErrInvalidEntryPayload)
}

// DecisionContext is the input aggregate for one pipeline run: the user's
// entries ordered ascending by date. Built once per run, read-only after.
type DecisionContext struct {
	UserID  string
	Entries []JournalEntry
}
