// Package suggest canonicalizes, repairs and deduplicates suggestion
// payloads before they reach persistence or the client
// Pipeline order
// 1 type allow-list
// 2 placeholder resolution on the description
// 3 alias folding startTime/meal_type/calorie
// 4 caller date stamping
// 5 time defaulting per type
// 6 task to event reclassification
// 7 meal cleanup mealType/calories/menu
// 8 defaults duration and title
// 9 placeholder scrub on metadata values
// 10 identity-key dedup against pending and within the batch
package suggest

// Meta is the typed key allow-list for suggestion metadata. Keys the
// rules never touch ride along in Extra untouched
type Meta struct {
	Title       string
	Name        string
	TaskTitle   string
	EventTitle  string
	HabitName   string
	Menu        string
	MenuItems   string
	MealType    string
	TargetTitle string
	NewValue    string
	Reason      string
	Content     string
	Notes       string

	Date    string
	ForDate string
	Time    string
	EndTime string

	DurationMinutes string
	Calories        string

	TargetType string
	TargetID   string
	Field      string
	Source     string

	Extra map[string]string
}

// FromMap lifts a flat metadata map into the typed shape. Unrecognized
// keys land in Extra
func FromMap(m map[string]string) Meta {
	meta := Meta{}
	for k, v := range m {
		switch k {
		case "title":
			meta.Title = v
		case "name":
			meta.Name = v
		case "taskTitle":
			meta.TaskTitle = v
		case "eventTitle":
			meta.EventTitle = v
		case "habitName":
			meta.HabitName = v
		case "menu":
			meta.Menu = v
		case "menuItems":
			meta.MenuItems = v
		case "mealType":
			meta.MealType = v
		case "targetTitle":
			meta.TargetTitle = v
		case "newValue":
			meta.NewValue = v
		case "reason":
			meta.Reason = v
		case "content":
			meta.Content = v
		case "notes":
			meta.Notes = v
		case "date":
			meta.Date = v
		case "forDate":
			meta.ForDate = v
		case "time":
			meta.Time = v
		case "endTime":
			meta.EndTime = v
		case "durationMinutes":
			meta.DurationMinutes = v
		case "calories":
			meta.Calories = v
		case "targetType":
			meta.TargetType = v
		case "targetId":
			meta.TargetID = v
		case "field":
			meta.Field = v
		case "source":
			meta.Source = v
		default:
			if meta.Extra == nil {
				meta.Extra = make(map[string]string)
			}
			meta.Extra[k] = v
		}
	}
	return meta
}

// ToMap flattens back to the wire/storage shape, omitting empty fields
func (m Meta) ToMap() map[string]string {
	out := make(map[string]string, 16+len(m.Extra))
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("title", m.Title)
	put("name", m.Name)
	put("taskTitle", m.TaskTitle)
	put("eventTitle", m.EventTitle)
	put("habitName", m.HabitName)
	put("menu", m.Menu)
	put("menuItems", m.MenuItems)
	put("mealType", m.MealType)
	put("targetTitle", m.TargetTitle)
	put("newValue", m.NewValue)
	put("reason", m.Reason)
	put("content", m.Content)
	put("notes", m.Notes)
	put("date", m.Date)
	put("forDate", m.ForDate)
	put("time", m.Time)
	put("endTime", m.EndTime)
	put("durationMinutes", m.DurationMinutes)
	put("calories", m.Calories)
	put("targetType", m.TargetType)
	put("targetId", m.TargetID)
	put("field", m.Field)
	put("source", m.Source)
	for k, v := range m.Extra {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func (m *Meta) extra(k string) string {
	if m.Extra == nil {
		return ""
	}
	return m.Extra[k]
}

func (m *Meta) setExtra(k, v string) {
	if m.Extra == nil {
		m.Extra = make(map[string]string)
	}
	m.Extra[k] = v
}

func (m *Meta) dropExtra(k string) {
	if m.Extra != nil {
		delete(m.Extra, k)
	}
}
