package domain

import "context"

// ReaderPort reads stored snapshots
type ReaderPort interface {
	// Load returns the user's stored snapshot, empty Document when none exists
	Load(ctx context.Context, userID string) (Document, error)

	// Users lists every user id with at least one stored section
	Users(ctx context.Context) ([]string, error)
}

// WriterPort persists snapshots
type WriterPort interface {
	// Save upserts every section of the document for the user
	Save(ctx context.Context, userID string, doc Document) error
}
