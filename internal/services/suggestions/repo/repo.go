// Package repo provides the Postgres repository for suggestions and memories
package repo

import (
	"context"
	"time"

	"assistant/internal/modkit/repokit"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// SuggestionRow is the persisted shape, metadata travels as JSON
type SuggestionRow struct {
	ID          string
	UserID      string
	Type        string
	Description string
	Status      string
	Metadata    []byte
	CreatedAt   time.Time
}

// MemoryRow is the persisted memory shape
type MemoryRow struct {
	ID        string
	UserID    string
	Category  string
	Content   string
	CreatedAt time.Time
}

// Storage defines the suggestions repository
type Storage interface {
	UpsertSuggestion(ctx context.Context, row SuggestionRow) error
	UpsertMemory(ctx context.Context, row MemoryRow) error
	HasForDate(ctx context.Context, userID, targetDate string) (bool, error)
	PendingByUser(ctx context.Context, userID string) ([]SuggestionRow, error)
}

type pg struct{ q repokit.Queryer }

func (s *pg) UpsertSuggestion(ctx context.Context, row SuggestionRow) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO ai_suggestions (id, user_id, type, description, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			status      = EXCLUDED.status,
			metadata    = EXCLUDED.metadata,
			created_at  = EXCLUDED.created_at
	`, row.ID, row.UserID, row.Type, row.Description, row.Status, row.Metadata, row.CreatedAt)
	return err
}

func (s *pg) UpsertMemory(ctx context.Context, row MemoryRow) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO ai_memory_items (id, user_id, category, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			content    = EXCLUDED.content,
			created_at = EXCLUDED.created_at
	`, row.ID, row.UserID, row.Category, row.Content, row.CreatedAt)
	return err
}

func (s *pg) HasForDate(ctx context.Context, userID, targetDate string) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM ai_suggestions
			WHERE user_id = $1 AND metadata->>'forDate' = $2
		)
	`, userID, targetDate).Scan(&exists)
	return exists, err
}

func (s *pg) PendingByUser(ctx context.Context, userID string) ([]SuggestionRow, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, user_id, type, description, status, metadata, created_at
		FROM ai_suggestions
		WHERE user_id = $1 AND status = 'pending'
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SuggestionRow
	for rows.Next() {
		var r SuggestionRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Type, &r.Description, &r.Status, &r.Metadata, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
