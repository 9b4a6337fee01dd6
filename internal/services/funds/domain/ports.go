// Package domain holds the fund lookup contracts
package domain

import (
	"context"

	"assistant/internal/adapters/market/tefas"
)

// SourcePort is the upstream fund price source
type SourcePort interface {
	Price(ctx context.Context, fundCode, date string) (*tefas.FundPrice, error)
	History(ctx context.Context, fundCode string, days int) ([]tefas.PricePoint, error)
	Search(ctx context.Context, query string) []tefas.FundSummary
}

// FundsPort is the lookup surface exposed to transports
type FundsPort interface {
	// Price resolves one fund, falling back to the sample list on upstream misses
	Price(ctx context.Context, fundCode, date string) (*tefas.FundPrice, error)

	History(ctx context.Context, fundCode string, days int) (HistoryResult, error)
	Search(ctx context.Context, query string) SearchResult
}
