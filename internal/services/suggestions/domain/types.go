// Package domain defines suggestion and memory persistence types
package domain

import "time"

// SuggestionRecord is one persisted suggestion row
type SuggestionRecord struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Metadata    map[string]string `json:"metadata"`
	CreatedAt   time.Time         `json:"timestamp"`
}

// MemoryRecord is one persisted memory row
type MemoryRecord struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// DailyInput controls one daily-suggestion generation run
type DailyInput struct {
	TargetDate     string `json:"target_date"`
	IncludeGeneral bool   `json:"include_general"`
	Force          bool   `json:"force"`
}

// DailyResult reports the outcome of a generation run
type DailyResult struct {
	Success    bool   `json:"success"`
	SavedCount int    `json:"saved_count"`
	Skipped    bool   `json:"skipped"`
	Message    string `json:"message"`
}
