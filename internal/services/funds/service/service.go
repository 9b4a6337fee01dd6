// Package service implements fund price lookups over the TEFAS source
package service

import (
	"context"
	"strings"

	"assistant/internal/adapters/market/tefas"
	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
	"assistant/internal/services/funds/domain"
)

// Service implements domain.FundsPort
type Service struct {
	Source domain.SourcePort

	log logger.Logger
}

// New constructs a new funds service
func New(source domain.SourcePort) *Service {
	return &Service{
		Source: source,
		log:    *logger.Named("funds"),
	}
}

// Price implements domain.FundsPort. When the upstream lookup fails the
// sample list answers for known codes so the UI keeps working offline
func (s *Service) Price(ctx context.Context, fundCode, date string) (*tefas.FundPrice, error) {
	code := strings.ToUpper(fundCode)

	price, err := s.Source.Price(ctx, code, date)
	if err == nil {
		return price, nil
	}
	s.log.Warn().Err(err).Str("fund", code).Msg("price lookup failed, trying samples")

	if samples := s.Source.Search(ctx, code); len(samples) > 0 {
		hit := samples[0]
		return &tefas.FundPrice{
			FundCode: hit.FundCode,
			FundName: hit.FundName,
			Price:    hit.Price,
			Date:     hit.Date,
		}, nil
	}
	return nil, perr.NotFoundf("Fon bulunamadı: %s", code)
}

// History implements domain.FundsPort
func (s *Service) History(ctx context.Context, fundCode string, days int) (domain.HistoryResult, error) {
	if days <= 0 {
		days = 30
	}
	code := strings.ToUpper(fundCode)

	points, err := s.Source.History(ctx, code, days)
	if err != nil {
		return domain.HistoryResult{}, err
	}
	if points == nil {
		points = []tefas.PricePoint{}
	}
	return domain.HistoryResult{FundCode: code, Days: days, History: points}, nil
}

// Search implements domain.FundsPort
func (s *Service) Search(ctx context.Context, query string) domain.SearchResult {
	funds := s.Source.Search(ctx, query)
	if funds == nil {
		funds = []tefas.FundSummary{}
	}
	return domain.SearchResult{Query: query, Count: len(funds), Funds: funds}
}
