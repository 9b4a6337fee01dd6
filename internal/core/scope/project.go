package scope

import (
	"strconv"
	"strings"
	"time"
)

// WindowInfo echoes the resolved bounds back with the original token
type WindowInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type"`
}

// Result is the successful shape handed back to the conversation loop
type Result struct {
	Category  string         `json:"category"`
	TimeRange WindowInfo     `json:"time_range"`
	Filters   map[string]any `json:"filters"`
	Data      any            `json:"data"`
	Count     int            `json:"count"`
}

// ErrorResult is fed back into the next model prompt so the model can
// self-correct and re-request
type ErrorResult struct {
	Error string `json:"error"`
	Data  any    `json:"data"`
}

// Process validates a request, resolves its window and routes it to the
// category projection. It never fails the turn, invalid requests come
// back as an ErrorResult
func Process(req Request, snap Snapshot, now time.Time) any {
	if err := Validate(req); err != nil {
		return ErrorResult{Error: err.Error()}
	}

	timeRange := req.TimeRange
	if timeRange == "" {
		timeRange = "all"
	}
	w, err := ResolveWindow(timeRange, req.CustomRange, now)
	if err != nil {
		return ErrorResult{Error: err.Error()}
	}

	filters := req.Filters
	if filters == nil {
		filters = map[string]any{}
	}

	var data any
	count := 1
	switch req.Category {
	case "tasks":
		rows := projectTasks(snap.Tasks, w, filters)
		data, count = rows, len(rows)
	case "notes":
		rows := projectNotes(snap.Notes, w, filters)
		data, count = rows, len(rows)
	case "health":
		rows := projectHealth(snap.Health, w)
		data, count = rows, len(rows)
	case "sleep":
		rows := projectSleep(snap.Sleep, w, filters)
		data, count = rows, len(rows)
	case "weight":
		rows := projectWeight(snap.Weight, w)
		data, count = rows, len(rows)
	case "meals":
		rows := projectMeals(snap.Meals, w, filters)
		data, count = rows, len(rows)
	case "workouts":
		rows := projectWorkouts(snap.Workouts, w, filters)
		data, count = rows, len(rows)
	case "portfolio":
		data = projectPortfolio(snap.Portfolio, snap.Investments, filters)
	case "goals":
		rows := projectGoals(snap.Goals, filters)
		data, count = rows, len(rows)
	case "budget":
		data = projectBudget(snap.Budget, snap.MonthlyExpenses, w, filters)
	case "salary":
		data = projectSalary(snap.SalaryConfig, filters)
	case "friends":
		rows := projectFriends(snap.Friends)
		data, count = rows, len(rows)
	}

	return Result{
		Category: req.Category,
		TimeRange: WindowInfo{
			Start: w.Start.Format(time.RFC3339),
			End:   w.End.Format(time.RFC3339),
			Type:  timeRange,
		},
		Filters: filters,
		Data:    data,
		Count:   count,
	}
}

func filterString(filters map[string]any, key string) (string, bool) {
	v, ok := filters[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func filterNumber(filters map[string]any, key string) (float64, bool) {
	v, ok := filters[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// filterStrings accepts both a single string and a list for multi-value
// filters like note tags
func filterStrings(filters map[string]any, key string) ([]string, bool) {
	v, ok := filters[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

type TaskView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Project   string `json:"project"`
	Tag       string `json:"tag"`
	Notes     string `json:"notes"`
}

func projectTasks(tasks []Task, w Window, filters map[string]any) []TaskView {
	status, hasStatus := filterString(filters, "status")
	project, hasProject := filterString(filters, "project")
	tag, hasTag := filterString(filters, "tag")

	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		if !w.within(t.StartDate) {
			continue
		}
		if hasStatus && t.Status != status {
			continue
		}
		if hasProject && t.Project != project {
			continue
		}
		if hasTag && t.Tag != tag {
			continue
		}
		out = append(out, TaskView{
			ID:        t.ID,
			Title:     t.Title,
			StartDate: t.StartDate,
			EndDate:   t.EndDate,
			Status:    t.Status,
			Project:   t.Project,
			Tag:       t.Tag,
			Notes:     t.Notes,
		})
	}
	return out
}

type NoteView struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Project string   `json:"project"`
	Date    string   `json:"date"`
}

func projectNotes(notes []Note, w Window, filters map[string]any) []NoteView {
	wantTags, hasTags := filterStrings(filters, "tags")
	project, hasProject := filterString(filters, "project")

	tagSet := make(map[string]bool, len(wantTags))
	for _, t := range wantTags {
		tagSet[t] = true
	}

	out := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		if !w.within(n.Date) {
			continue
		}
		if hasTags {
			match := false
			for _, t := range n.Tags {
				if tagSet[t] {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if hasProject && n.Project != project {
			continue
		}
		tags := n.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, NoteView{
			ID:      n.ID,
			Title:   n.Title,
			Content: n.Content,
			Tags:    tags,
			Project: n.Project,
			Date:    n.Date,
		})
	}
	return out
}

type HealthView struct {
	Date             string  `json:"date"`
	CaloriesBurned   float64 `json:"calories_burned"`
	CaloriesConsumed float64 `json:"calories_consumed"`
	Steps            float64 `json:"steps"`
	ActiveMinutes    float64 `json:"active_minutes"`
	CalorieDeficit   float64 `json:"calorie_deficit"`
}

func projectHealth(entries []HealthEntry, w Window) []HealthView {
	out := make([]HealthView, 0, len(entries))
	for _, h := range entries {
		if !w.within(h.Date) {
			continue
		}
		out = append(out, HealthView{
			Date:             h.Date,
			CaloriesBurned:   h.CaloriesBurned,
			CaloriesConsumed: h.CaloriesConsumed,
			Steps:            h.Steps,
			ActiveMinutes:    h.ActiveMinutes,
			CalorieDeficit:   h.CaloriesBurned - h.CaloriesConsumed,
		})
	}
	return out
}

type SleepView struct {
	Date          string  `json:"date"`
	BedTime       string  `json:"bed_time"`
	WakeTime      string  `json:"wake_time"`
	DurationHours float64 `json:"duration_hours"`
	Quality       float64 `json:"quality"`
	Notes         string  `json:"notes"`
}

func projectSleep(entries []SleepEntry, w Window, filters map[string]any) []SleepView {
	minQuality, hasQuality := filterNumber(filters, "quality")

	out := make([]SleepView, 0, len(entries))
	for _, s := range entries {
		if !w.within(s.Date) {
			continue
		}
		if hasQuality && s.Quality < minQuality {
			continue
		}
		out = append(out, SleepView{
			Date:          s.Date,
			BedTime:       s.BedTime,
			WakeTime:      s.WakeTime,
			DurationHours: sleepDuration(s.BedTime, s.WakeTime),
			Quality:       s.Quality,
			Notes:         s.Notes,
		})
	}
	return out
}

func sleepDuration(bed, wake string) float64 {
	b, okB := parseTime(bed)
	wk, okW := parseTime(wake)
	if !okB || !okW {
		return 0
	}
	return wk.Sub(b).Hours()
}

type WeightView struct {
	Date       string  `json:"date"`
	Weight     float64 `json:"weight"`
	BodyFat    float64 `json:"body_fat"`
	MuscleMass float64 `json:"muscle_mass"`
	BMI        float64 `json:"bmi"`
	Notes      string  `json:"notes"`
}

func projectWeight(entries []WeightEntry, w Window) []WeightView {
	out := make([]WeightView, 0, len(entries))
	for _, e := range entries {
		if !w.within(e.Date) {
			continue
		}
		out = append(out, WeightView{
			Date:       e.Date,
			Weight:     e.Weight,
			BodyFat:    e.BodyFat,
			MuscleMass: e.MuscleMass,
			BMI:        e.BMI,
			Notes:      e.Notes,
		})
	}
	return out
}

type MealView struct {
	Date        string  `json:"date"`
	MealType    string  `json:"meal_type"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Notes       string  `json:"notes"`
}

func projectMeals(meals []Meal, w Window, filters map[string]any) []MealView {
	mealType, hasType := filterString(filters, "meal_type")

	out := make([]MealView, 0, len(meals))
	for _, m := range meals {
		if !w.within(m.Date) {
			continue
		}
		if hasType && m.MealType != mealType {
			continue
		}
		out = append(out, MealView{
			Date:        m.Date,
			MealType:    m.MealType,
			Description: m.Description,
			Calories:    m.Calories,
			Notes:       m.Notes,
		})
	}
	return out
}

type WorkoutView struct {
	Date            string   `json:"date"`
	WorkoutType     string   `json:"workout_type"`
	DurationMinutes float64  `json:"duration_minutes"`
	CaloriesBurned  float64  `json:"calories_burned"`
	Exercises       []string `json:"exercises"`
	Notes           string   `json:"notes"`
}

func projectWorkouts(workouts []Workout, w Window, filters map[string]any) []WorkoutView {
	workoutType, hasType := filterString(filters, "workout_type")

	out := make([]WorkoutView, 0, len(workouts))
	for _, wo := range workouts {
		if !w.within(wo.Date) {
			continue
		}
		if hasType && wo.WorkoutType != workoutType {
			continue
		}
		exercises := wo.Exercises
		if exercises == nil {
			exercises = []string{}
		}
		out = append(out, WorkoutView{
			Date:            wo.Date,
			WorkoutType:     wo.WorkoutType,
			DurationMinutes: wo.Duration,
			CaloriesBurned:  wo.CaloriesBurned,
			Exercises:       exercises,
			Notes:           wo.Notes,
		})
	}
	return out
}

type PortfolioSummary struct {
	TotalInvestment   float64 `json:"total_investment"`
	CurrentValue      float64 `json:"current_value"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
	DailyChange       float64 `json:"daily_change"`
}

type InvestmentView struct {
	FundCode         string  `json:"fund_code"`
	FundName         string  `json:"fund_name"`
	InvestmentAmount float64 `json:"investment_amount"`
	PurchasePrice    float64 `json:"purchase_price"`
	PurchaseDate     string  `json:"purchase_date"`
	Units            float64 `json:"units"`
}

type PortfolioView struct {
	Summary     PortfolioSummary `json:"summary"`
	Investments []InvestmentView `json:"investments"`
	Funds       []map[string]any `json:"funds"`
}

func projectPortfolio(p Portfolio, investments []Investment, filters map[string]any) PortfolioView {
	funds := p.Funds
	if fundCode, ok := filterString(filters, "fund_code"); ok {
		want := strings.ToUpper(fundCode)
		kept := make([]Investment, 0, len(investments))
		for _, inv := range investments {
			if strings.ToUpper(inv.FundCode) == want {
				kept = append(kept, inv)
			}
		}
		investments = kept

		filtered := make([]map[string]any, 0, len(funds))
		for _, f := range funds {
			if code, _ := f["fund_code"].(string); strings.ToUpper(code) == want {
				filtered = append(filtered, f)
			}
		}
		funds = filtered
	}
	if funds == nil {
		funds = []map[string]any{}
	}

	views := make([]InvestmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, InvestmentView{
			FundCode:         inv.FundCode,
			FundName:         inv.FundName,
			InvestmentAmount: inv.InvestmentAmount,
			PurchasePrice:    inv.PurchasePrice,
			PurchaseDate:     inv.PurchaseDate,
			Units:            inv.Units,
		})
	}

	return PortfolioView{
		Summary: PortfolioSummary{
			TotalInvestment:   p.TotalInvestment,
			CurrentValue:      p.CurrentValue,
			ProfitLoss:        p.TotalProfitLoss,
			ProfitLossPercent: p.ProfitLossPercent,
			DailyChange:       p.DailyChange,
		},
		Investments: views,
		Funds:       funds,
	}
}

type GoalView struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	TargetAmount    float64 `json:"target_amount"`
	CurrentAmount   float64 `json:"current_amount"`
	Deadline        string  `json:"deadline"`
	Category        string  `json:"category"`
	ProgressPercent float64 `json:"progress_percent"`
	OrderIndex      int     `json:"order_index"`
	Notes           string  `json:"notes"`
}

// projectGoals ignores the time window, goals are not dated records
func projectGoals(goals []Goal, filters map[string]any) []GoalView {
	category, hasCategory := filterString(filters, "category")
	status, hasStatus := filterString(filters, "status")

	out := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		if hasCategory && g.Category != category {
			continue
		}
		if hasStatus {
			switch status {
			case "completed":
				if g.CurrentAmount < g.TargetAmount {
					continue
				}
			case "in_progress":
				if g.CurrentAmount <= 0 || g.CurrentAmount >= g.TargetAmount {
					continue
				}
			case "pending":
				if g.CurrentAmount != 0 {
					continue
				}
			}
		}
		// target defaults to 1 so an unset goal does not divide by zero
		target := g.TargetAmount
		if target == 0 {
			target = 1
		}
		out = append(out, GoalView{
			ID:              g.ID,
			Title:           g.Title,
			TargetAmount:    g.TargetAmount,
			CurrentAmount:   g.CurrentAmount,
			Deadline:        g.Deadline,
			Category:        g.Category,
			ProgressPercent: g.CurrentAmount / target * 100,
			OrderIndex:      g.OrderIndex,
			Notes:           g.Notes,
		})
	}
	return out
}

type CurrentBudget struct {
	MonthlySalary        float64 `json:"monthly_salary"`
	TotalInvestments     float64 `json:"total_investments"`
	CustomExpenses       float64 `json:"custom_expenses"`
	AvailableForExpenses float64 `json:"available_for_expenses"`
}

type ExpenseView struct {
	Month        string  `json:"month"`
	TotalExpense float64 `json:"total_expense"`
	Salary       float64 `json:"salary"`
	Investments  float64 `json:"investments"`
}

type BudgetView struct {
	CurrentBudget   CurrentBudget `json:"current_budget"`
	MonthlyExpenses []ExpenseView `json:"monthly_expenses"`
}

func projectBudget(b Budget, expenses []MonthlyExpense, w Window, filters map[string]any) BudgetView {
	month, hasMonth := filterString(filters, "month")

	out := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		if !w.within(e.Month) {
			continue
		}
		if hasMonth && !strings.Contains(e.Month, month) {
			continue
		}
		out = append(out, ExpenseView{
			Month:        e.Month,
			TotalExpense: e.TotalExpense,
			Salary:       e.Salary,
			Investments:  e.Investments,
		})
	}

	return BudgetView{
		CurrentBudget: CurrentBudget{
			MonthlySalary:        b.MonthlySalary,
			TotalInvestments:     b.TotalInvestments,
			CustomExpenses:       b.CustomExpenses,
			AvailableForExpenses: b.MonthlySalary - b.TotalInvestments - b.CustomExpenses,
		},
		MonthlyExpenses: out,
	}
}

type MonthlyIncomeView struct {
	Month        int      `json:"month"`
	Year         int      `json:"year"`
	BaseSalary   float64  `json:"base_salary"`
	Multiplier   float64  `json:"multiplier"`
	TotalSalary  float64  `json:"total_salary"`
	ExtraIncomes []Income `json:"extra_incomes"`
	TotalIncome  float64  `json:"total_income"`
}

type SalaryView struct {
	Year                 int                 `json:"year"`
	BaseSalary           float64             `json:"base_salary"`
	TotalYearlyIncome    float64             `json:"total_yearly_income"`
	AverageMonthlyIncome float64             `json:"average_monthly_income"`
	MonthlyIncomes       []MonthlyIncomeView `json:"monthly_incomes"`
}

func projectSalary(cfg SalaryConfig, filters map[string]any) SalaryView {
	year, hasYear := filterNumber(filters, "year")
	month, hasMonth := filterNumber(filters, "month")

	out := make([]MonthlyIncomeView, 0, len(cfg.MonthlyIncomes))
	for _, m := range cfg.MonthlyIncomes {
		if hasYear && m.Year != int(year) {
			continue
		}
		if hasMonth && m.Month != int(month) {
			continue
		}
		extra := m.ExtraIncomes
		if extra == nil {
			extra = []Income{}
		}
		out = append(out, MonthlyIncomeView{
			Month:        m.Month,
			Year:         m.Year,
			BaseSalary:   m.BaseSalary,
			Multiplier:   m.Multiplier,
			TotalSalary:  m.TotalSalary,
			ExtraIncomes: extra,
			TotalIncome:  m.TotalIncome,
		})
	}

	return SalaryView{
		Year:                 cfg.Year,
		BaseSalary:           cfg.BaseSalary,
		TotalYearlyIncome:    cfg.TotalYearlyIncome,
		AverageMonthlyIncome: cfg.AverageMonthlyIncome,
		MonthlyIncomes:       out,
	}
}

type FriendView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	AddedAt string `json:"added_at"`
}

func projectFriends(friends []Friend) []FriendView {
	out := make([]FriendView, 0, len(friends))
	for _, f := range friends {
		out = append(out, FriendView{
			ID:      f.ID,
			Name:    f.Name,
			Email:   f.Email,
			AddedAt: f.AddedAt,
		})
	}
	return out
}
