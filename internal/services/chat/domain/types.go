// Package domain defines the conversational surface shared by the loop
// controller and its transports
package domain

import (
	"assistant/internal/core/directive"
	"assistant/internal/core/scope"
)

// ChatInput is one conversation turn submitted by the client.
// History is caller-resubmitted, the server keeps no session state
type ChatInput struct {
	Message  string           `json:"message" validate:"required"`
	UserData scope.Snapshot   `json:"user_data"`
	History  []directive.Turn `json:"conversation_history"`
	UserID   string           `json:"user_id,omitempty"`
}

// SuggestionView is a normalized suggestion as returned to the client
type SuggestionView struct {
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// ChatResult is the terminal outcome of one conversation turn
type ChatResult struct {
	Response         string                 `json:"response"`
	History          []directive.Turn       `json:"conversation_history"`
	DataRequestsMade int                    `json:"data_requests_made"`
	Suggestions      []SuggestionView       `json:"suggestions"`
	Memories         []directive.MemoryItem `json:"memories"`
	Timestamp        string                 `json:"timestamp"`
}

// QuickAnalysisInput asks for a single-shot summary of one category
type QuickAnalysisInput struct {
	Category  string         `json:"category" validate:"required"`
	UserData  scope.Snapshot `json:"user_data"`
	TimeRange string         `json:"time_range"`
	UserID    string         `json:"user_id,omitempty"`
}

// QuickAnalysisResult carries the analysis text back with its scope echoed
type QuickAnalysisResult struct {
	Analysis  string `json:"analysis"`
	Category  string `json:"category"`
	TimeRange string `json:"time_range"`
	Timestamp string `json:"timestamp"`
}
