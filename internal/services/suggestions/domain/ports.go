package domain

import (
	"context"

	"assistant/internal/core/directive"
	"assistant/internal/core/suggest"
)

// InvokerPort sends one prompt to the model and returns plain text
type InvokerPort interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// WriterPort persists normalized suggestion and memory batches.
// Both writes are idempotent under retry, rows carry deterministic ids
type WriterPort interface {
	// SaveSuggestions upserts the batch, returns the number of rows written
	SaveSuggestions(ctx context.Context, userID string, items []suggest.Item, targetDate, source string) (int, error)

	// SaveMemories upserts the batch, returns the number of rows written
	SaveMemories(ctx context.Context, userID string, memories []directive.MemoryItem) (int, error)
}

// ReaderPort answers dedup questions about stored suggestions
type ReaderPort interface {
	// HasForDate reports whether any suggestion targets the given date
	HasForDate(ctx context.Context, userID, targetDate string) (bool, error)

	// PendingKeys returns the identity keys of every pending suggestion,
	// consumed by the normalizer's batch dedup
	PendingKeys(ctx context.Context, userID string) (map[string]bool, error)
}

// DailyPort generates and persists tomorrow's suggestions for one user
type DailyPort interface {
	GenerateDaily(ctx context.Context, userID string, in DailyInput) (DailyResult, error)
}
