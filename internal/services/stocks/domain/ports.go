// Package domain holds the stock lookup contracts
package domain

import (
	"context"

	"assistant/internal/adapters/market/stocks"
)

// SourcePort is the upstream quote source
type SourcePort interface {
	Price(ctx context.Context, symbol, date string) (*stocks.Quote, error)
	History(ctx context.Context, symbol string, days int) ([]stocks.PricePoint, error)
	Search(ctx context.Context, query string) []stocks.StockSuggestion
}

// StocksPort is the lookup surface exposed to transports
type StocksPort interface {
	Price(ctx context.Context, symbol, date string) (*stocks.Quote, error)
	History(ctx context.Context, symbol string, days int) (HistoryResult, error)
	Search(ctx context.Context, query string) SearchResult
}
