// Package service implements stock quote lookups over the chart source
package service

import (
	"context"
	"strings"

	"assistant/internal/adapters/market/stocks"
	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
	"assistant/internal/services/stocks/domain"
)

// Service implements domain.StocksPort
type Service struct {
	Source domain.SourcePort

	log logger.Logger
}

// New constructs a new stocks service
func New(source domain.SourcePort) *Service {
	return &Service{
		Source: source,
		log:    *logger.Named("stocks"),
	}
}

// Price implements domain.StocksPort
func (s *Service) Price(ctx context.Context, symbol, date string) (*stocks.Quote, error) {
	sym := strings.ToUpper(symbol)

	quote, err := s.Source.Price(ctx, sym, date)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", sym).Msg("quote lookup failed")
		return nil, perr.NotFoundf("Stock not found: %s", sym)
	}
	return quote, nil
}

// History implements domain.StocksPort
func (s *Service) History(ctx context.Context, symbol string, days int) (domain.HistoryResult, error) {
	if days <= 0 {
		days = 30
	}
	sym := strings.ToUpper(symbol)

	points, err := s.Source.History(ctx, sym, days)
	if err != nil {
		return domain.HistoryResult{}, err
	}
	if points == nil {
		points = []stocks.PricePoint{}
	}
	return domain.HistoryResult{Symbol: sym, Days: days, Count: len(points), History: points}, nil
}

// Search implements domain.StocksPort
func (s *Service) Search(ctx context.Context, query string) domain.SearchResult {
	hits := s.Source.Search(ctx, query)
	if hits == nil {
		hits = []stocks.StockSuggestion{}
	}
	return domain.SearchResult{Query: query, Count: len(hits), Stocks: hits}
}
