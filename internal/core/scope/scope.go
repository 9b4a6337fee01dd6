// Package scope resolves a data request against a full snapshot of one
// user's records and returns only the matching, field-reduced slice.
// Categories and windows are closed sets, every projection echoes a
// whitelisted shape so raw records never reach the model
package scope

import (
	"fmt"
	"strings"
)

// Categories in declaration order, also the order used in error messages
var Categories = []string{
	"tasks", "notes", "health", "sleep", "weight", "meals",
	"workouts", "portfolio", "goals", "budget", "salary", "friends",
}

// TimeRanges in declaration order
var TimeRanges = []string{"today", "yesterday", "week", "month", "year", "all", "custom"}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Request is the validated input of a resolution pass
type Request struct {
	Category    string         `json:"category"`
	TimeRange   string         `json:"time_range"`
	Filters     map[string]any `json:"filters"`
	CustomRange *CustomRange   `json:"custom_range,omitempty"`
}

// CustomRange carries ISO date bounds for a custom window
type CustomRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate checks category, time range and custom bounds.
// The error strings are part of the protocol, they are fed back to the
// model verbatim so it can self-correct
func Validate(req Request) error {
	if req.Category == "" {
		return fmt.Errorf("Missing 'category' field")
	}
	if !contains(Categories, req.Category) {
		return fmt.Errorf("Invalid category. Valid options: %s", strings.Join(Categories, ", "))
	}
	if req.TimeRange != "" && !contains(TimeRanges, req.TimeRange) {
		return fmt.Errorf("Invalid time_range. Valid options: %s", strings.Join(TimeRanges, ", "))
	}
	if req.TimeRange == "custom" {
		if req.CustomRange == nil {
			return fmt.Errorf("custom_range required when time_range is 'custom'")
		}
		if req.CustomRange.StartDate == "" || req.CustomRange.EndDate == "" {
			return fmt.Errorf("custom_range must contain start_date and end_date")
		}
	}
	return nil
}

var timeRangeTR = map[string]string{
	"today":     "bugün",
	"yesterday": "dün",
	"week":      "bu hafta",
	"month":     "bu ay",
	"year":      "bu yıl",
	"all":       "tüm zamanlar",
	"custom":    "özel tarih aralığı",
}

var categoryTR = map[string]string{
	"tasks":     "görevler",
	"notes":     "notlar",
	"health":    "sağlık verileri",
	"sleep":     "uyku verileri",
	"weight":    "kilo verileri",
	"meals":     "yemek kayıtları",
	"workouts":  "antrenman kayıtları",
	"portfolio": "portföy verileri",
	"goals":     "finansal hedefler",
	"budget":    "bütçe bilgileri",
	"salary":    "maaş bilgileri",
	"friends":   "arkadaş listesi",
}

// DescribeRequest renders the user-visible progress line for a request
// being resolved mid conversation
func DescribeRequest(category, timeRange string) string {
	if timeRange == "" {
		timeRange = "all"
	}
	cat, ok := categoryTR[category]
	if !ok {
		cat = category
	}
	tr, ok := timeRangeTR[timeRange]
	if !ok {
		tr = timeRange
	}
	return fmt.Sprintf("📊 **%s** verilerini analiz ediyorum (%s)...", cat, tr)
}
