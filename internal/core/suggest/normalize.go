package suggest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"assistant/internal/core/directive"
)

// FallbackDescription replaces a description nothing in the metadata
// could repair
const FallbackDescription = "AI önerisi"

// Item is one normalized suggestion ready for persistence
type Item struct {
	Type        string
	Description string
	Meta        Meta
}

// Options steers one normalization batch
type Options struct {
	// TargetDate, when set, overrides whatever date the model proposed
	TargetDate string
	// PendingKeys holds identity keys of suggestions already awaiting
	// the user, collisions are dropped
	PendingKeys map[string]bool
}

var reHHMM = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

func validClock(s string) bool { return reHHMM.MatchString(s) }

// descriptionCandidates is the metadata priority order used to repair a
// placeholder description
func descriptionCandidates(m Meta) []string {
	return []string{
		m.Title, m.Name, m.TaskTitle, m.EventTitle, m.HabitName,
		m.Menu, m.MenuItems, m.MealType, m.TargetTitle,
		m.NewValue, m.Reason, m.Content,
	}
}

// Normalize runs the full rule pipeline over one parsed batch
func Normalize(batch []directive.Suggestion, opts Options) []Item {
	seen := make(map[string]bool, len(batch))
	out := make([]Item, 0, len(batch))

	for _, s := range batch {
		typ := strings.ToLower(strings.TrimSpace(s.Type))
		if !directive.SuggestionTypes[typ] {
			continue
		}

		it := Item{
			Type:        typ,
			Description: strings.TrimSpace(s.Description),
			Meta:        FromMap(s.Metadata),
		}

		resolveDescription(&it)
		foldAliases(&it.Meta)
		stampDate(&it.Meta, opts.TargetDate)
		defaultTime(&it)
		reclassifyTaskToEvent(&it)
		if it.Type == "meal" {
			cleanupMeal(&it.Meta)
		}
		applyDefaults(&it)
		scrubMetadata(&it)

		key := Key(it)
		if seen[key] || opts.PendingKeys[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// resolveDescription repairs an empty or placeholder description from
// metadata, falling back to a generic literal
func resolveDescription(it *Item) {
	if !isPlaceholder(it.Description) {
		return
	}
	for _, c := range descriptionCandidates(it.Meta) {
		c = strings.TrimSpace(c)
		if c != "" && !isPlaceholder(c) {
			it.Description = c
			return
		}
	}
	it.Description = FallbackDescription
}

// foldAliases moves known alternate spellings onto the canonical keys
// when the canonical key is absent
func foldAliases(m *Meta) {
	if m.Time == "" {
		if v := m.extra("startTime"); v != "" {
			m.Time = v
			m.dropExtra("startTime")
		}
	}
	if m.MealType == "" {
		if v := m.extra("meal_type"); v != "" {
			m.MealType = v
			m.dropExtra("meal_type")
		}
	}
	if m.Calories == "" {
		if v := m.extra("calorie"); v != "" {
			m.Calories = v
			m.dropExtra("calorie")
		}
	}
}

// stampDate forces the caller's target date over whatever the model put
// on the suggestion
func stampDate(m *Meta, targetDate string) {
	if targetDate == "" {
		return
	}
	m.Date = targetDate
	m.ForDate = targetDate
}

// defaultTime synthesizes a clock time for records that should have one
func defaultTime(it *Item) {
	switch it.Type {
	case "meal":
		if !validClock(it.Meta.Time) {
			it.Meta.Time = mealSlotTime(it.Meta.MealType)
		}
	case "task", "event":
		if !validClock(it.Meta.Time) {
			it.Meta.Time = "09:00"
		}
	}
}

// mealSlotTime maps a meal label onto its canonical slot
func mealSlotTime(mealType string) string {
	k := foldKey(mealType)
	switch {
	case strings.Contains(k, "kahvalti") || strings.Contains(k, "breakfast"):
		return "08:00"
	case strings.Contains(k, "ogle") || strings.Contains(k, "lunch"):
		return "13:00"
	case strings.Contains(k, "aksam") || strings.Contains(k, "dinner"):
		return "19:00"
	default:
		return "16:00"
	}
}

// reclassifyTaskToEvent promotes a task with a clock-time span to an
// event, the taxonomy treats "has a span" as the boundary not the tag
func reclassifyTaskToEvent(it *Item) {
	if it.Type != "task" {
		return
	}
	if !validClock(it.Meta.Time) {
		return
	}
	if validClock(it.Meta.EndTime) || strings.TrimSpace(it.Meta.DurationMinutes) != "" {
		it.Type = "event"
	}
}

var menuSeparators = regexp.MustCompile(`[|;,\n•·]+|(?:^|\s)[-*]\s+`)

// cleanupMeal infers the meal type from the clock, sanitizes calories
// and explodes the menu into discrete items mirrored both as a
// pipe-joined string and as menuItemN fields
func cleanupMeal(m *Meta) {
	if m.MealType == "" && validClock(m.Time) {
		h, _ := strconv.Atoi(strings.SplitN(m.Time, ":", 2)[0])
		switch {
		case h >= 6 && h < 11:
			m.MealType = "Kahvaltı"
		case h >= 11 && h < 16:
			m.MealType = "Öğle Yemeği"
		case h >= 17 && h <= 21:
			m.MealType = "Akşam Yemeği"
		default:
			m.MealType = "Atıştırmalık"
		}
	}

	if m.Calories != "" {
		var digits strings.Builder
		for _, r := range m.Calories {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		m.Calories = digits.String()
	}

	if m.Menu != "" {
		items := splitMenu(m.Menu)
		if len(items) > 0 {
			m.Menu = strings.Join(items, "|")
			for i, item := range items {
				m.setExtra(fmt.Sprintf("menuItem%d", i+1), item)
			}
		}
	}
}

// splitMenu breaks a free-form menu string into at most six items
func splitMenu(menu string) []string {
	parts := menuSeparators.Split(menu, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, p)
		if len(items) == 6 {
			break
		}
	}
	return items
}

// applyDefaults fills duration and title defaults per type
func applyDefaults(it *Item) {
	m := &it.Meta
	switch it.Type {
	case "event":
		if strings.TrimSpace(m.DurationMinutes) == "" {
			m.DurationMinutes = "60"
		}
	case "task":
		if strings.TrimSpace(m.DurationMinutes) == "" {
			m.DurationMinutes = "30"
		}
	}

	switch it.Type {
	case "note", "collection", "habit", "task", "event":
		if strings.TrimSpace(m.Title) == "" {
			m.Title = it.Description
		}
	case "edit":
		if strings.TrimSpace(m.Title) == "" {
			m.Title = fmt.Sprintf("%s:%s→%s", m.TargetType, m.Field, m.NewValue)
		}
	}
}

// scrubMetadata re-applies the placeholder test to metadata values that
// feed user-visible text. A scrubbed title is refilled from the
// description so title-bearing types never end up blank
func scrubMetadata(it *Item) {
	m := &it.Meta
	for _, f := range []*string{&m.Content, &m.Name, &m.TaskTitle, &m.EventTitle} {
		if *f != "" && isPlaceholder(*f) {
			*f = ""
		}
	}
	if m.Title != "" && isPlaceholder(m.Title) {
		m.Title = ""
		if !isPlaceholder(it.Description) {
			m.Title = it.Description
		}
	}
}

// Key derives the identity tuple used to detect that two suggestions
// describe the same real-world action
func Key(it Item) string {
	date := it.Meta.Date
	if date == "" {
		date = it.Meta.ForDate
	}
	text := it.Meta.Title
	if strings.TrimSpace(text) == "" {
		text = it.Description
	}
	return it.Type + "|" + date + "|" + it.Meta.Time + "|" + foldKey(text)
}

// collectionHints marks note metadata that really describes a list of
// things to keep, those notes are promoted to collections downstream
var collectionHints = []string{"items", "listItems", "collectionName"}

// Finalize is the last pass before persistence, it promotes list-like
// notes to collections and throttles habit suggestions to one per batch
func Finalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	habits := 0
	for _, it := range items {
		if it.Type == "note" && looksLikeCollection(it.Meta) {
			it.Type = "collection"
		}
		if it.Type == "habit" {
			habits++
			if habits > 1 {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func looksLikeCollection(m Meta) bool {
	if m.MenuItems != "" {
		return true
	}
	for _, k := range collectionHints {
		if m.extra(k) != "" {
			return true
		}
	}
	return false
}
