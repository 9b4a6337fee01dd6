// Package domain defines the daily sweep contracts
package domain

import "context"

// SweepError is one user that failed during a sweep
type SweepError struct {
	UserID string `json:"user_id"`
	Error  string `json:"error"`
}

// SweepResult summarizes one pass over all users
type SweepResult struct {
	Success        bool         `json:"success"`
	ProcessedUsers int          `json:"processed_users"`
	TotalUsers     int          `json:"total_users"`
	Errors         []SweepError `json:"errors"`
}

// SweepPort runs one daily check over every known user
type SweepPort interface {
	DailyCheck(ctx context.Context) (SweepResult, error)
}

// WorkerPort (run loop) is separate
type WorkerPort interface {
	Run(ctx context.Context) error
}
