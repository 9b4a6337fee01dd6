// Package domain defines the snapshot backup and restore types
package domain

import "encoding/json"

// Document is the client's full data snapshot, sections keyed the way
// the mobile app names them (tasks, notes, mealEntries, fundInvestments, ...).
// Section payloads are stored opaque, the server never reshapes them
type Document map[string]json.RawMessage

// BackupReceipt confirms a stored backup
type BackupReceipt struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id"`
}
