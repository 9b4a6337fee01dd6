package suggest

import (
	"testing"

	"assistant/internal/core/directive"
)

func one(t *testing.T, items []Item) Item {
	t.Helper()
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d: %+v", len(items), items)
	}
	return items[0]
}

func TestNormalize_PlaceholderDescriptionRepairedFromTitle(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "task",
		Description: "Açıklama",
		Metadata:    map[string]string{"title": "Market alışverişi"},
	}}, Options{})

	it := one(t, got)
	if it.Description != "Market alışverişi" {
		t.Fatalf("description = %q", it.Description)
	}
}

func TestNormalize_PlaceholderFallbackLiteral(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "note",
		Description: "içerik",
		Metadata:    map[string]string{"content": "DESC"},
	}}, Options{})

	it := one(t, got)
	if it.Description != FallbackDescription {
		t.Fatalf("description = %q want %q", it.Description, FallbackDescription)
	}
}

func TestNormalize_TaskWithSpanBecomesEvent(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "task",
		Description: "Spor salonu",
		Metadata:    map[string]string{"time": "18:00", "durationMinutes": "60"},
	}}, Options{})

	it := one(t, got)
	if it.Type != "event" {
		t.Fatalf("type = %q want event", it.Type)
	}
}

func TestNormalize_TaskWithoutSpanStaysTask(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "task",
		Description: "Fatura öde",
		Metadata:    map[string]string{},
	}}, Options{})

	it := one(t, got)
	if it.Type != "task" {
		t.Fatalf("type = %q want task", it.Type)
	}
	if it.Meta.Time != "09:00" {
		t.Fatalf("time = %q want default 09:00", it.Meta.Time)
	}
	if it.Meta.DurationMinutes != "30" {
		t.Fatalf("durationMinutes = %q want 30", it.Meta.DurationMinutes)
	}
}

func TestNormalize_MealMenuExplodesIntoItems(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "meal",
		Description: "Kahvaltı",
		Metadata: map[string]string{
			"mealType": "Kahvaltı",
			"calories": "yaklaşık 350 kcal",
			"menu":     "Yumurta 200 kcal|Peynir 150 kcal",
		},
	}}, Options{})

	it := one(t, got)
	if it.Meta.Menu != "Yumurta 200 kcal|Peynir 150 kcal" {
		t.Fatalf("menu = %q", it.Meta.Menu)
	}
	if it.Meta.extra("menuItem1") != "Yumurta 200 kcal" || it.Meta.extra("menuItem2") != "Peynir 150 kcal" {
		t.Fatalf("menu items = %+v", it.Meta.Extra)
	}
	if it.Meta.Calories != "350" {
		t.Fatalf("calories = %q want digits only", it.Meta.Calories)
	}
	if it.Meta.Time != "08:00" {
		t.Fatalf("time = %q want breakfast slot", it.Meta.Time)
	}
}

func TestNormalize_MealTypeInferredFromClock(t *testing.T) {
	cases := []struct {
		time string
		want string
	}{
		{"08:30", "Kahvaltı"},
		{"12:15", "Öğle Yemeği"},
		{"19:00", "Akşam Yemeği"},
		{"23:00", "Atıştırmalık"},
	}
	for _, tc := range cases {
		t.Run(tc.time, func(t *testing.T) {
			got := Normalize([]directive.Suggestion{{
				Type:        "meal",
				Description: "Yemek",
				Metadata:    map[string]string{"time": tc.time},
			}}, Options{})
			if it := one(t, got); it.Meta.MealType != tc.want {
				t.Fatalf("mealType = %q want %q", it.Meta.MealType, tc.want)
			}
		})
	}
}

func TestNormalize_AliasFolding(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "meal",
		Description: "Öğle yemeği",
		Metadata: map[string]string{
			"startTime": "12:30",
			"meal_type": "Öğle Yemeği",
			"calorie":   "600",
		},
	}}, Options{})

	it := one(t, got)
	if it.Meta.Time != "12:30" || it.Meta.MealType != "Öğle Yemeği" || it.Meta.Calories != "600" {
		t.Fatalf("got %+v", it.Meta)
	}
	if it.Meta.extra("startTime") != "" || it.Meta.extra("meal_type") != "" {
		t.Fatalf("aliases not removed: %+v", it.Meta.Extra)
	}
}

func TestNormalize_TargetDateWins(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "meal",
		Description: "Akşam yemeği",
		Metadata:    map[string]string{"date": "2026-01-01"},
	}}, Options{TargetDate: "2026-03-16"})

	it := one(t, got)
	if it.Meta.Date != "2026-03-16" || it.Meta.ForDate != "2026-03-16" {
		t.Fatalf("got date %q forDate %q", it.Meta.Date, it.Meta.ForDate)
	}
}

func TestNormalize_BatchDuplicatesCollapse(t *testing.T) {
	s := directive.Suggestion{
		Type:        "task",
		Description: "Rapor yaz",
		Metadata:    map[string]string{"date": "2026-03-16", "time": "10:00", "title": "Rapor yaz"},
	}
	got := Normalize([]directive.Suggestion{s, s}, Options{})
	if len(got) != 1 {
		t.Fatalf("expected duplicate to collapse, got %d items", len(got))
	}
}

func TestNormalize_PendingKeyCollisionDropped(t *testing.T) {
	s := directive.Suggestion{
		Type:        "task",
		Description: "Rapor yaz",
		Metadata:    map[string]string{"date": "2026-03-16", "time": "10:00", "title": "Rapor yaz"},
	}
	first := Normalize([]directive.Suggestion{s}, Options{})
	pending := map[string]bool{Key(one(t, first)): true}

	got := Normalize([]directive.Suggestion{s}, Options{PendingKeys: pending})
	if len(got) != 0 {
		t.Fatalf("expected pending collision to drop, got %+v", got)
	}
}

func TestNormalize_EditTitleSynthesized(t *testing.T) {
	got := Normalize([]directive.Suggestion{{
		Type:        "edit",
		Description: "Durumu güncelle",
		Metadata:    map[string]string{"targetType": "task", "field": "status", "newValue": "done"},
	}}, Options{})

	it := one(t, got)
	if it.Meta.Title != "task:status→done" {
		t.Fatalf("title = %q", it.Meta.Title)
	}
}

func TestFinalize_NoteWithListMetadataBecomesCollection(t *testing.T) {
	items := []Item{{
		Type:        "note",
		Description: "Okunacak kitaplar",
		Meta:        Meta{Extra: map[string]string{"items": "Kitap A|Kitap B"}},
	}}

	got := Finalize(items)
	if len(got) != 1 || got[0].Type != "collection" {
		t.Fatalf("got %+v", got)
	}
}

func TestFinalize_HabitCappedAtOne(t *testing.T) {
	items := []Item{
		{Type: "habit", Description: "Su iç"},
		{Type: "habit", Description: "Erken yat"},
		{Type: "note", Description: "Not"},
	}

	got := Finalize(items)
	habits := 0
	for _, it := range got {
		if it.Type == "habit" {
			habits++
		}
	}
	if habits != 1 || len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestFoldKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Açıklama", "aciklama"},
		{"İÇERİK", "icerik"},
		{"Market alışverişi!", "marketalisverisi"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := foldKey(tc.in); got != tc.want {
			t.Fatalf("foldKey(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestMetaRoundTrip(t *testing.T) {
	m := FromMap(map[string]string{
		"title":    "Başlık",
		"date":     "2026-03-16",
		"weirdKey": "x",
	})
	if m.Title != "Başlık" || m.Date != "2026-03-16" || m.extra("weirdKey") != "x" {
		t.Fatalf("got %+v", m)
	}
	flat := m.ToMap()
	if flat["title"] != "Başlık" || flat["weirdKey"] != "x" {
		t.Fatalf("flat = %+v", flat)
	}
	if _, ok := flat["content"]; ok {
		t.Fatal("empty fields must be omitted")
	}
}
