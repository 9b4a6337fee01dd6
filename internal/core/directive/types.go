// Package directive extracts structured instructions embedded in free-form
// model output
// Recognized spans
// 1 data_request JSON either inside a fenced json block or bare with balanced braces
// 2 <SUGGESTION type="..."> body with an optional [metadata:k=v,...] trailer
// 3 <MEMORY category="..."> free text
// 4 <EDIT targetType targetId> Field / NewValue / Reason lines
// 5 <DELETE targetType targetId> optional Reason line
// Malformed spans are skipped never fatal
package directive

// SuggestionTypes is the closed set of types a suggestion may carry.
// Anything else is dropped at parse time
var SuggestionTypes = map[string]bool{
	"meal":       true,
	"task":       true,
	"event":      true,
	"note":       true,
	"collection": true,
	"habit":      true,
	"general":    true,
	"edit":       true,
}

// CustomRange carries caller-supplied ISO date bounds for a custom window
type CustomRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DataRequest asks for a scoped slice of the user's data
type DataRequest struct {
	Category    string         `json:"category"`
	TimeRange   string         `json:"time_range"`
	Filters     map[string]any `json:"filters"`
	CustomRange *CustomRange   `json:"custom_range,omitempty"`
}

// Suggestion is one proposed record emitted by the model
type Suggestion struct {
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// EditDirective requests a mutation of an existing record.
// Field and NewValue are mandatory, Reason optional
type EditDirective struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Field      string `json:"field"`
	NewValue   string `json:"new_value"`
	Reason     string `json:"reason"`
}

// DeleteDirective requests removal of an existing record
type DeleteDirective struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
}

// MemoryItem is a fact the assistant chose to retain about the user
type MemoryItem struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Turn is one entry of a caller-resubmitted conversation history.
// DataRequest marks system turns that carried fetched data so prompt
// builders can exclude them from the visible transcript
type Turn struct {
	Role        string `json:"role"`
	Content     string `json:"content"`
	IsUser      bool   `json:"is_user"`
	DataRequest bool   `json:"data_request,omitempty"`
}
