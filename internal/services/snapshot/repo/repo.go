// Package repo provides the Postgres repository for snapshot sections
package repo

import (
	"context"

	"assistant/internal/modkit/repokit"
	"assistant/internal/platform/store"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the snapshot repository
type Storage interface {
	UpsertSection(ctx context.Context, userID, section string, payload []byte) error
	Sections(ctx context.Context, userID string) (map[string][]byte, error)
	UserIDs(ctx context.Context) ([]string, error)
}

type pg struct{ q repokit.Queryer }

func (s *pg) UpsertSection(ctx context.Context, userID, section string, payload []byte) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO snapshot_sections (user_id, section, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, section)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`, userID, section, payload)
	return err
}

func (s *pg) Sections(ctx context.Context, userID string) (map[string][]byte, error) {
	rows, err := s.q.Query(ctx, `
		SELECT section, payload
		FROM snapshot_sections
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]byte{}
	for rows.Next() {
		var section string
		var payload []byte
		if err := rows.Scan(&section, &payload); err != nil {
			return nil, err
		}
		out[section] = payload
	}
	return out, rows.Err()
}

func (s *pg) UserIDs(ctx context.Context) ([]string, error) {
	return store.Many(ctx, s.q, func(r store.Row) (string, error) {
		var id string
		err := r.Scan(&id)
		return id, err
	}, `
		SELECT DISTINCT user_id
		FROM snapshot_sections
		ORDER BY user_id
	`)
}
