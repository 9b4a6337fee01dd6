// Package repo provides the Postgres repository for the email send log
package repo

import (
	"context"
	"time"

	"assistant/internal/modkit/repokit"
	"assistant/internal/platform/store"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// LogRow marks one digest send
type LogRow struct {
	ID        string
	UserID    string
	EmailType string
	SentDate  string
	SentAt    time.Time
}

// Storage defines the email log repository
type Storage interface {
	WasSentOn(ctx context.Context, userID, emailType, date string) (bool, error)
	MarkSent(ctx context.Context, row LogRow) error
}

type pg struct{ q repokit.Queryer }

func (s *pg) WasSentOn(ctx context.Context, userID, emailType, date string) (bool, error) {
	return store.Scalar[bool](ctx, s.q, `
		SELECT EXISTS (
			SELECT 1 FROM email_log
			WHERE user_id = $1 AND email_type = $2 AND sent_date = $3
		)
	`, userID, emailType, date)
}

func (s *pg) MarkSent(ctx context.Context, row LogRow) error {
	return store.ExecOne(ctx, s.q, `
		INSERT INTO email_log (id, user_id, email_type, sent_date, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`, row.ID, row.UserID, row.EmailType, row.SentDate, row.SentAt)
}
