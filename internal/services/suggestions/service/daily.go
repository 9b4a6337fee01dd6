package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"assistant/internal/core/directive"
	"assistant/internal/core/scope"
	"assistant/internal/core/suggest"
	perr "assistant/internal/platform/errors"
	"assistant/internal/services/suggestions/domain"
	snapdomain "assistant/internal/services/snapshot/domain"
)

// dailySystemPrompt is the strict tag-only instruction for the generation
// run. The model must answer with SUGGESTION spans and nothing else
const dailySystemPrompt = `Sen bir beslenme koçusun ve kullanıcıya yarın için yemek önerileri çıkarıyorsun.

ÇIKTI KURALLARI:
- SADECE SUGGESTION tagları yaz. Başka metin ekleme.
- Format:
  <SUGGESTION type="meal">ACIKLAMA [metadata:mealType=Kahvaltı,date=YYYY-MM-DD,calories=450,title=...,notes=...]</SUGGESTION>
  <SUGGESTION type="task">ACIKLAMA [metadata:title=...,date=YYYY-MM-DD,durationMinutes=30,notes=...]</SUGGESTION>
- Metadata değerlerinde virgül kullanma. Gerekirse '-' kullan.
- calories sadece sayı olsun (kcal yazma).
- date mutlaka hedef tarih (YYYY-MM-DD) olmalı.
- Yemek önerileri Türkçe, kısa ve net olmalı.
- En az 3 öğün (Kahvaltı, Öğle, Akşam) öner. İstersen Atıştırmalık ekleyebilirsin.
- include_general true ise 1 adet task önerisi ekle.
`

// compact context rows, only what the coach needs to see

type compactMeal struct {
	Date        string  `json:"date"`
	MealType    string  `json:"mealType"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
}

type compactHealth struct {
	Date             string  `json:"date"`
	Steps            float64 `json:"steps"`
	CaloriesBurned   float64 `json:"caloriesBurned"`
	CaloriesConsumed float64 `json:"caloriesConsumed"`
	ActiveMinutes    float64 `json:"activeMinutes"`
}

type compactSleep struct {
	Date    string  `json:"date"`
	Quality float64 `json:"quality"`
}

type compactWorkout struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Duration float64 `json:"duration"`
}

type dailyContext struct {
	RecentMeals      []compactMeal    `json:"recent_meals"`
	AvgDailyCalories float64          `json:"avg_daily_calories"`
	RecentHealth     []compactHealth  `json:"recent_health"`
	RecentSleep      []compactSleep   `json:"recent_sleep"`
	RecentWorkouts   []compactWorkout `json:"recent_workouts"`
}

func section[T any](doc snapdomain.Document, key string) []T {
	raw, ok := doc[key]
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func parseISODate(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func day(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func tail[T any](in []T, n int) []T {
	if len(in) > n {
		return in[len(in)-n:]
	}
	return in
}

// buildDailyContext compacts the stored snapshot into the JSON the
// generation prompt carries: last 20 meals with an average-calorie
// figure plus a week of health, sleep and workout rows
func buildDailyContext(doc snapdomain.Document) string {
	meals := section[scope.Meal](doc, "mealEntries")
	sort.SliceStable(meals, func(i, j int) bool {
		return parseISODate(meals[i].Date).Before(parseISODate(meals[j].Date))
	})

	compactMeals := make([]compactMeal, 0, 20)
	for _, m := range tail(meals, 20) {
		compactMeals = append(compactMeals, compactMeal{
			Date:        day(m.Date),
			MealType:    m.MealType,
			Description: m.Description,
			Calories:    m.Calories,
		})
	}

	byDay := map[string]float64{}
	for _, m := range compactMeals {
		byDay[m.Date] += m.Calories
	}
	var total float64
	for _, v := range byDay {
		total += v
	}
	days := len(byDay)
	if days == 0 {
		days = 1
	}
	avg := math.Round(total / float64(days))

	health := make([]compactHealth, 0, 7)
	for _, h := range tail(section[scope.HealthEntry](doc, "healthEntries"), 7) {
		health = append(health, compactHealth{
			Date:             day(h.Date),
			Steps:            h.Steps,
			CaloriesBurned:   h.CaloriesBurned,
			CaloriesConsumed: h.CaloriesConsumed,
			ActiveMinutes:    h.ActiveMinutes,
		})
	}

	sleep := make([]compactSleep, 0, 7)
	for _, e := range tail(section[scope.SleepEntry](doc, "sleepEntries"), 7) {
		sleep = append(sleep, compactSleep{Date: day(e.Date), Quality: e.Quality})
	}

	workouts := make([]compactWorkout, 0, 7)
	for _, w := range tail(section[scope.Workout](doc, "workoutEntries"), 7) {
		workouts = append(workouts, compactWorkout{Date: day(w.Date), Type: w.WorkoutType, Duration: w.Duration})
	}

	b, err := json.Marshal(dailyContext{
		RecentMeals:      compactMeals,
		AvgDailyCalories: avg,
		RecentHealth:     health,
		RecentSleep:      sleep,
		RecentWorkouts:   workouts,
	})
	if err != nil {
		return "{}"
	}
	return string(b)
}

// GenerateDaily implements domain.DailyPort
func (s *Service) GenerateDaily(ctx context.Context, userID string, in domain.DailyInput) (domain.DailyResult, error) {
	if userID == "" {
		return domain.DailyResult{}, perr.InvalidArgf("user id required")
	}

	target := in.TargetDate
	if target == "" {
		target = s.now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	}

	if !in.Force {
		exists, err := s.HasForDate(ctx, userID, target)
		if err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("suggestion existence check failed")
		}
		if exists {
			return domain.DailyResult{
				Success: true,
				Skipped: true,
				Message: "Suggestions already exist for target date.",
			}, nil
		}
	}

	doc, err := s.Snaps.Load(ctx, userID)
	if err != nil {
		return domain.DailyResult{}, perr.Wrapf(err, perr.ErrorCodeDB, "load snapshot for %s", userID)
	}
	coachContext := buildDailyContext(doc)

	includeGeneral := "false"
	if in.IncludeGeneral {
		includeGeneral = "true"
	}
	message := fmt.Sprintf(
		"Hedef tarih: %s.\ninclude_general: %s.\nLütfen bu kurala uy ve sadece SUGGESTION tag'larıyla yanıt ver.",
		target, includeGeneral,
	)
	prompt := fmt.Sprintf("Bağlam:\n%s\n\nKullanıcı: %s\n\nAsistan:", coachContext, message)

	text, err := s.Invoker.Generate(ctx, dailySystemPrompt, prompt)
	if err != nil {
		return domain.DailyResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "daily suggestions generation failed")
	}

	parsed := directive.ParseSuggestions(text)
	if !in.IncludeGeneral {
		mealOnly := parsed[:0]
		for _, sg := range parsed {
			if sg.Type == "meal" {
				mealOnly = append(mealOnly, sg)
			}
		}
		parsed = mealOnly
	}

	pending, err := s.PendingKeys(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("pending key load failed")
		pending = nil
	}

	items := suggest.Finalize(suggest.Normalize(parsed, suggest.Options{
		TargetDate:  target,
		PendingKeys: pending,
	}))
	if len(items) == 0 {
		return domain.DailyResult{Message: "No suggestions generated."}, nil
	}

	saved, err := s.SaveSuggestions(ctx, userID, items, target, "daily_suggestions")
	if err != nil {
		return domain.DailyResult{}, err
	}
	return domain.DailyResult{
		Success:    true,
		SavedCount: saved,
		Message:    "Suggestions saved.",
	}, nil
}
