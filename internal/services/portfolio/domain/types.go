// Package domain holds the portfolio calculation and history contracts
package domain

import "time"

// FundInvestment is one fund position as the client stores it
type FundInvestment struct {
	FundCode         string  `json:"fund_code" validate:"required"`
	FundName         string  `json:"fund_name,omitempty"`
	InvestmentAmount float64 `json:"investment_amount"`
	PurchasePrice    float64 `json:"purchase_price"`
	PurchaseDate     string  `json:"purchase_date,omitempty"`
	Units            float64 `json:"units,omitempty"`
}

// StockInvestment is one stock position as the client stores it
type StockInvestment struct {
	Symbol           string  `json:"symbol" validate:"required"`
	StockName        string  `json:"stock_name,omitempty"`
	InvestmentAmount float64 `json:"investment_amount"`
	PurchasePrice    float64 `json:"purchase_price"`
	PurchaseDate     string  `json:"purchase_date,omitempty"`
}

// CalculateInput is the combined portfolio request
type CalculateInput struct {
	FundInvestments  []FundInvestment  `json:"fund_investments"`
	StockInvestments []StockInvestment `json:"stock_investments"`
}

// FundDetail is one priced fund position
type FundDetail struct {
	FundCode          string  `json:"fund_code"`
	FundName          string  `json:"fund_name"`
	InvestmentAmount  float64 `json:"investment_amount"`
	CurrentValue      float64 `json:"current_value"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
	PurchasePrice     float64 `json:"purchase_price"`
	CurrentPrice      float64 `json:"current_price"`
	Units             float64 `json:"units"`
}

// StockDetail is one priced stock position
type StockDetail struct {
	Symbol            string  `json:"symbol"`
	StockName         string  `json:"stock_name"`
	InvestmentAmount  float64 `json:"investment_amount"`
	CurrentValue      float64 `json:"current_value"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
	PurchasePrice     float64 `json:"purchase_price"`
	CurrentPrice      float64 `json:"current_price"`
	Units             float64 `json:"units"`
	Currency          string  `json:"currency"`
}

// Summary is the combined portfolio result
type Summary struct {
	TotalInvestment   float64       `json:"total_investment"`
	CurrentValue      float64       `json:"current_value"`
	TotalProfitLoss   float64       `json:"total_profit_loss"`
	ProfitLossPercent float64       `json:"profit_loss_percent"`
	DailyChange       float64       `json:"daily_change"`
	Funds             []FundDetail  `json:"funds"`
	Stocks            []StockDetail `json:"stocks"`
}

// HistoryPoint is one day of portfolio value
type HistoryPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	TotalValue float64   `json:"total_value"`
	FundCode   string    `json:"fund_code,omitempty"`
}

// FundReference names a fund that has history rows
type FundReference struct {
	FundCode string `json:"fund_code"`
	FundName string `json:"fund_name,omitempty"`
}

// FundPerformance is the per-fund change cache over fixed lookbacks
type FundPerformance struct {
	FundCode      string  `json:"fund_code"`
	FundName      string  `json:"fund_name,omitempty"`
	LatestValue   float64 `json:"latest_value"`
	DailyChange   float64 `json:"daily_change"`
	WeeklyChange  float64 `json:"weekly_change"`
	MonthlyChange float64 `json:"monthly_change"`
	YearlyChange  float64 `json:"yearly_change"`
}

// HistoryResponse is the portfolio history envelope
type HistoryResponse struct {
	Range          string            `json:"range"`
	FundCode       string            `json:"fund_code,omitempty"`
	StartDate      time.Time         `json:"start_date"`
	EndDate        time.Time         `json:"end_date"`
	Points         []HistoryPoint    `json:"points"`
	ChangeValue    float64           `json:"change_value"`
	ChangePercent  float64           `json:"change_percent"`
	AvailableFunds []FundReference   `json:"available_funds"`
	Performances   []FundPerformance `json:"performances"`
}
