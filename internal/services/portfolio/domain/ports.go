package domain

import (
	"context"

	"assistant/internal/adapters/market/stocks"
	"assistant/internal/adapters/market/tefas"
)

// FundMarketPort prices fund positions and single days
type FundMarketPort interface {
	CalculateProfitLoss(ctx context.Context, fundCode string, purchasePrice, purchaseAmount float64, currentDate string) (*tefas.ProfitLoss, error)
	Price(ctx context.Context, fundCode, date string) (*tefas.FundPrice, error)
}

// StockMarketPort prices stock positions
type StockMarketPort interface {
	CalculateProfitLoss(ctx context.Context, symbol string, purchasePrice, purchaseAmount float64, currentDate string) (*stocks.ProfitLoss, error)
}

// PortfolioPort is the surface exposed to transports
type PortfolioPort interface {
	// Calculate prices every position and records the daily snapshot rows
	Calculate(ctx context.Context, in CalculateInput) (Summary, error)

	// History returns stored daily values for one fund or the whole portfolio
	History(ctx context.Context, rangeKey, fundCode string) (HistoryResponse, error)
}
