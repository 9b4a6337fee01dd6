package directive

import (
	"strings"
	"testing"
)

func TestParseDataRequest_FencedBlock(t *testing.T) {
	reply := "Bir bakayım.\n```json\n{\"data_request\": {\"category\": \"tasks\", \"time_range\": \"week\", \"filters\": {\"status\": \"pending\"}}}\n```\n"

	dr := ParseDataRequest(reply)
	if dr == nil {
		t.Fatal("expected a data request, got nil")
	}
	if dr.Category != "tasks" || dr.TimeRange != "week" {
		t.Fatalf("got %+v", dr)
	}
	if dr.Filters["status"] != "pending" {
		t.Fatalf("filters = %v", dr.Filters)
	}
}

func TestParseDataRequest_SkipsMalformedFencedThenBare(t *testing.T) {
	reply := "```json\n{not json at all\n```\n" +
		`some prose {"data_request": {"category": "meals", "time_range": "today", "filters": {}}} trailing`

	dr := ParseDataRequest(reply)
	if dr == nil {
		t.Fatal("expected bare-brace fallback to find the request")
	}
	if dr.Category != "meals" || dr.TimeRange != "today" {
		t.Fatalf("got %+v", dr)
	}
}

func TestParseDataRequest_CustomRange(t *testing.T) {
	reply := `{"data_request": {"category": "sleep", "time_range": "custom", "filters": {}, "custom_range": {"start_date": "2026-01-01", "end_date": "2026-01-31"}}}`

	dr := ParseDataRequest(reply)
	if dr == nil || dr.CustomRange == nil {
		t.Fatalf("expected custom range, got %+v", dr)
	}
	if dr.CustomRange.StartDate != "2026-01-01" || dr.CustomRange.EndDate != "2026-01-31" {
		t.Fatalf("custom range = %+v", dr.CustomRange)
	}
}

func TestParseDataRequest_None(t *testing.T) {
	if dr := ParseDataRequest("Bugün hava güzel."); dr != nil {
		t.Fatalf("expected nil, got %+v", dr)
	}
}

func TestParseSuggestions_MealWithMenu(t *testing.T) {
	reply := `<SUGGESTION type="meal">Kahvaltı [metadata:mealType=Kahvaltı,calories=350,menu=Yumurta 200 kcal|Peynir 150 kcal]</SUGGESTION>`

	got := ParseSuggestions(reply)
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	s := got[0]
	if s.Type != "meal" || s.Description != "Kahvaltı" {
		t.Fatalf("got %+v", s)
	}
	if s.Metadata["menu"] != "Yumurta 200 kcal|Peynir 150 kcal" {
		t.Fatalf("menu = %q", s.Metadata["menu"])
	}
	if s.Metadata["calories"] != "350" {
		t.Fatalf("calories = %q", s.Metadata["calories"])
	}
}

func TestParseSuggestions_CommaInsideValueSurvives(t *testing.T) {
	reply := `<suggestion type="task">Alışveriş [metadata:title=Süt, ekmek al,durationMinutes=30]</suggestion>`

	got := ParseSuggestions(reply)
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	if got[0].Metadata["title"] != "Süt, ekmek al" {
		t.Fatalf("title = %q", got[0].Metadata["title"])
	}
	if got[0].Metadata["durationMinutes"] != "30" {
		t.Fatalf("durationMinutes = %q", got[0].Metadata["durationMinutes"])
	}
}

func TestParseSuggestions_UnknownTypeDropped(t *testing.T) {
	reply := `<SUGGESTION type="rocket">Fırlat</SUGGESTION><SUGGESTION type="note">Not al</SUGGESTION>`

	got := ParseSuggestions(reply)
	if len(got) != 1 || got[0].Type != "note" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseMemories_DefaultCategory(t *testing.T) {
	reply := "<MEMORY>Kullanıcı sabahları kahve içer</MEMORY>\n" +
		`<MEMORY category="health">Gluten hassasiyeti var</MEMORY>`

	got := ParseMemories(reply)
	if len(got) != 2 {
		t.Fatalf("expected two memories, got %d", len(got))
	}
	if got[0].Category != "general" {
		t.Fatalf("category = %q", got[0].Category)
	}
	if got[1].Category != "health" || got[1].Content != "Gluten hassasiyeti var" {
		t.Fatalf("got %+v", got[1])
	}
}

func TestParseEdits_MissingNewValueDropped(t *testing.T) {
	reply := `<EDIT targetType="task" targetId="abc-123">
Field: status
Reason: tamamlandı
</EDIT>`

	if got := ParseEdits(reply); len(got) != 0 {
		t.Fatalf("expected edit to be dropped, got %+v", got)
	}
}

func TestParseEdits_Complete(t *testing.T) {
	reply := `<EDIT targetType="meal" targetId="m-1">
Field: calories
NewValue: 420
Reason: porsiyon güncellendi
</EDIT>`

	got := ParseEdits(reply)
	if len(got) != 1 {
		t.Fatalf("expected one edit, got %d", len(got))
	}
	ed := got[0]
	if ed.TargetType != "meal" || ed.TargetID != "m-1" || ed.Field != "calories" || ed.NewValue != "420" || ed.Reason != "porsiyon güncellendi" {
		t.Fatalf("got %+v", ed)
	}
}

func TestParseDeletes(t *testing.T) {
	reply := `<DELETE targetType="note" targetId="n-9">
Reason: artık gerekli değil
</DELETE>`

	got := ParseDeletes(reply)
	if len(got) != 1 {
		t.Fatalf("expected one delete, got %d", len(got))
	}
	if got[0].TargetType != "note" || got[0].TargetID != "n-9" || got[0].Reason != "artık gerekli değil" {
		t.Fatalf("got %+v", got[0])
	}
}

func TestStrip_RemovesBlocksAndCollapsesBlanks(t *testing.T) {
	reply := "Günaydın!\n\n" +
		`<SUGGESTION type="meal">Kahvaltı [metadata:mealType=Kahvaltı]</SUGGESTION>` + "\n\n" +
		"İşte planın.\n\n" +
		"<MEMORY>Erken kalkıyor</MEMORY>\n\n" +
		"İyi günler."

	got := Strip(reply)
	if strings.Contains(got, "SUGGESTION") || strings.Contains(got, "MEMORY") {
		t.Fatalf("tag residue in %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank run not collapsed: %q", got)
	}
	for _, want := range []string{"Günaydın!", "İşte planın.", "İyi günler."} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}

func TestStrip_LeavesEditMarkup(t *testing.T) {
	reply := `<EDIT targetType="task" targetId="t-1">
Field: status
NewValue: done
</EDIT>`

	if got := Strip(reply); !strings.Contains(got, "<EDIT") {
		t.Fatalf("edit markup should survive stripping, got %q", got)
	}
}
