// Package history keeps an append-only log of scoring calls.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	KindMatch     = "match"
	KindAttrition = "attrition"
)

// Record is one scoring call.
type Record struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Model     string    `json:"model"`
	Score     float64   `json:"score"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS prediction_history (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	subject    TEXT NOT NULL DEFAULT '',
	model      TEXT NOT NULL DEFAULT '',
	score      REAL NOT NULL,
	level      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
`

// Store persists prediction records in the shared database.
type Store struct {
	db *sql.DB
}

func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create prediction_history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append stores the record, assigning an id and timestamp when absent.
func (s *Store) Append(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prediction_history (id, kind, subject, model, score, level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind, rec.Subject, rec.Model, rec.Score, rec.Level, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append prediction record: %w", err)
	}

	return nil
}

// List returns the newest records, capped by limit.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, subject, model, score, level, created_at
		FROM prediction_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list prediction records: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0, limit)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Subject, &rec.Model, &rec.Score, &rec.Level, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prediction record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list prediction records: %w", err)
	}

	return records, nil
}
