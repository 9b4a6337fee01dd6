// Package domain holds the digest email contracts
package domain

import "assistant/internal/core/scope"

// Recipient is one friend address
type Recipient struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
}

// DailySummaryInput is the on-demand friend summary request
type DailySummaryInput struct {
	UserName   string       `json:"user_name"`
	Tasks      []scope.Task `json:"tasks"`
	Recipients []Recipient  `json:"recipients"`
	Date       string       `json:"date,omitempty"`
}

// SendDetail is the per-recipient outcome
type SendDetail struct {
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// EmailResult is the dispatch envelope
type EmailResult struct {
	Success     bool         `json:"success"`
	SentCount   int          `json:"sent_count"`
	FailedCount int          `json:"failed_count"`
	Details     []SendDetail `json:"details"`
}

// EmailSettings is the per-user mail configuration kept in the snapshot
// under the emailSettings section
type EmailSettings struct {
	UserName      string      `json:"userName"`
	PersonalEmail string      `json:"personalEmail"`
	Friends       []Recipient `json:"friends"`
}
