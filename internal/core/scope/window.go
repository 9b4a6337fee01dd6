package scope

import (
	"fmt"
	"time"
)

// epoch is the lower bound of the "all" window
var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Window is a resolved half-open-in-spirit but inclusively-filtered
// UTC time span
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow maps a time range token onto concrete UTC bounds.
// week/month/year are rolling 7/30/365 day windows ending now, not
// calendar aligned, a documented simplification kept on purpose
func ResolveWindow(timeRange string, custom *CustomRange, now time.Time) (Window, error) {
	now = now.UTC()
	switch timeRange {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: now}, nil
	case "yesterday":
		y := now.AddDate(0, 0, -1)
		start := time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, time.UTC)
		end := time.Date(y.Year(), y.Month(), y.Day(), 23, 59, 59, 0, time.UTC)
		return Window{Start: start, End: end}, nil
	case "week":
		return Window{Start: now.AddDate(0, 0, -7), End: now}, nil
	case "month":
		return Window{Start: now.AddDate(0, 0, -30), End: now}, nil
	case "year":
		return Window{Start: now.AddDate(0, 0, -365), End: now}, nil
	case "custom":
		if custom == nil {
			return Window{}, fmt.Errorf("custom_range required when time_range is 'custom'")
		}
		start, ok := parseTime(custom.StartDate)
		if !ok {
			return Window{}, fmt.Errorf("invalid custom_range start_date %q", custom.StartDate)
		}
		end, ok := parseTime(custom.EndDate)
		if !ok {
			return Window{}, fmt.Errorf("invalid custom_range end_date %q", custom.EndDate)
		}
		return Window{Start: start, End: end}, nil
	default: // all and the empty token
		return Window{Start: epoch, End: now}, nil
	}
}

// parseTime accepts the timestamp shapes client records carry, RFC3339
// with or without Z, a bare date, or a year-month
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006-01",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// within reports whether a record timestamp string falls inside w,
// bounds inclusive. Unparseable stamps never match
func (w Window) within(s string) bool {
	t, ok := parseTime(s)
	if !ok {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}
