package scope

// Snapshot is the full client-supplied copy of one user's records for a
// single turn. Field names mirror the client payload, camelCase where
// the client stores camelCase
type Snapshot struct {
	Tasks           []Task           `json:"tasks"`
	Notes           []Note           `json:"notes"`
	Health          []HealthEntry    `json:"health"`
	Sleep           []SleepEntry     `json:"sleep"`
	Weight          []WeightEntry    `json:"weight"`
	Meals           []Meal           `json:"meals"`
	Workouts        []Workout        `json:"workouts"`
	Portfolio       Portfolio        `json:"portfolio"`
	Investments     []Investment     `json:"investments"`
	Goals           []Goal           `json:"goals"`
	Budget          Budget           `json:"budget"`
	MonthlyExpenses []MonthlyExpense `json:"monthly_expenses"`
	SalaryConfig    SalaryConfig     `json:"salary_config"`
	Friends         []Friend         `json:"friends"`
}

// Task is a planner entry. The client stores the status under "task"
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"task"`
	Project   string `json:"project"`
	Tag       string `json:"tag"`
	Notes     string `json:"notes"`
}

type Note struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Project string   `json:"project"`
	Date    string   `json:"date"`
}

type HealthEntry struct {
	Date             string  `json:"date"`
	CaloriesBurned   float64 `json:"caloriesBurned"`
	CaloriesConsumed float64 `json:"caloriesConsumed"`
	Steps            float64 `json:"steps"`
	ActiveMinutes    float64 `json:"activeMinutes"`
}

type SleepEntry struct {
	Date     string  `json:"date"`
	BedTime  string  `json:"bedTime"`
	WakeTime string  `json:"wakeTime"`
	Quality  float64 `json:"quality"`
	Notes    string  `json:"notes"`
}

type WeightEntry struct {
	Date       string  `json:"date"`
	Weight     float64 `json:"weight"`
	BodyFat    float64 `json:"bodyFat"`
	MuscleMass float64 `json:"muscleMass"`
	BMI        float64 `json:"bmi"`
	Notes      string  `json:"notes"`
}

type Meal struct {
	Date        string  `json:"date"`
	MealType    string  `json:"mealType"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Notes       string  `json:"notes"`
}

type Workout struct {
	Date           string   `json:"date"`
	WorkoutType    string   `json:"workoutType"`
	Duration       float64  `json:"duration"`
	CaloriesBurned float64  `json:"caloriesBurned"`
	Exercises      []string `json:"exercises"`
	Notes          string   `json:"notes"`
}

// Portfolio carries client-computed totals plus per-fund rows that are
// passed through untouched
type Portfolio struct {
	TotalInvestment   float64          `json:"total_investment"`
	CurrentValue      float64          `json:"current_value"`
	TotalProfitLoss   float64          `json:"total_profit_loss"`
	ProfitLossPercent float64          `json:"profit_loss_percent"`
	DailyChange       float64          `json:"daily_change"`
	Funds             []map[string]any `json:"funds"`
}

type Investment struct {
	FundCode         string  `json:"fundCode"`
	FundName         string  `json:"fundName"`
	InvestmentAmount float64 `json:"investmentAmount"`
	PurchasePrice    float64 `json:"purchasePrice"`
	PurchaseDate     string  `json:"purchaseDate"`
	Units            float64 `json:"units"`
}

type Goal struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
	Category      string  `json:"category"`
	OrderIndex    int     `json:"orderIndex"`
	Notes         string  `json:"notes"`
}

type Budget struct {
	MonthlySalary    float64 `json:"monthlySalary"`
	TotalInvestments float64 `json:"totalInvestments"`
	CustomExpenses   float64 `json:"customExpenses"`
}

type MonthlyExpense struct {
	Month        string  `json:"month"`
	TotalExpense float64 `json:"totalExpense"`
	Salary       float64 `json:"salary"`
	Investments  float64 `json:"investments"`
}

type SalaryConfig struct {
	Year                 int             `json:"year"`
	BaseSalary           float64         `json:"baseSalary"`
	TotalYearlyIncome    float64         `json:"totalYearlyIncome"`
	AverageMonthlyIncome float64         `json:"averageMonthlyIncome"`
	MonthlyIncomes       []MonthlyIncome `json:"monthlyIncomes"`
}

type MonthlyIncome struct {
	Month        int      `json:"month"`
	Year         int      `json:"year"`
	BaseSalary   float64  `json:"baseSalary"`
	Multiplier   float64  `json:"multiplier"`
	TotalSalary  float64  `json:"totalSalary"`
	ExtraIncomes []Income `json:"extraIncomes"`
	TotalIncome  float64  `json:"totalIncome"`
}

type Income struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Friend struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	AddedAt string `json:"addedAt"`
}
