package domain

import (
	"context"

	"assistant/internal/core/directive"
	"assistant/internal/core/suggest"
)

// InvokerPort sends one prompt to the model and returns plain text.
// Fallback model selection and retries live behind this seam, the loop
// controller never retries on its own
type InvokerPort interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// DirectiveSinkPort persists extracted suggestion and memory batches.
// Saves are best effort, a failed write never fails the conversation turn
type DirectiveSinkPort interface {
	SaveSuggestions(ctx context.Context, userID string, items []suggest.Item, targetDate, source string) (int, error)
	SaveMemories(ctx context.Context, userID string, memories []directive.MemoryItem) (int, error)
}

// ConversationPort is the chat surface exposed to transports
type ConversationPort interface {
	// Chat runs the bounded data-request loop for one turn
	Chat(ctx context.Context, in ChatInput) (ChatResult, error)

	// QuickAnalysis resolves one category and asks the model for a summary
	QuickAnalysis(ctx context.Context, in QuickAnalysisInput) (QuickAnalysisResult, error)
}
