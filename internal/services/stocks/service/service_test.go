package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"assistant/internal/adapters/market/stocks"
)

type stubSource struct {
	quote   *stocks.Quote
	err     error
	history []stocks.PricePoint
	hits    []stocks.StockSuggestion

	historyDays int
}

func (s *stubSource) Price(context.Context, string, string) (*stocks.Quote, error) {
	return s.quote, s.err
}

func (s *stubSource) History(_ context.Context, _ string, days int) ([]stocks.PricePoint, error) {
	s.historyDays = days
	return s.history, s.err
}

func (s *stubSource) Search(context.Context, string) []stocks.StockSuggestion {
	return s.hits
}

func TestPrice_MissIsNotFound(t *testing.T) {
	s := New(&stubSource{err: errors.New("no chart data")})

	_, err := s.Price(context.Background(), "nope", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Stock not found: NOPE") {
		t.Fatalf("error = %v", err)
	}
}

func TestPrice_QuotePassesThrough(t *testing.T) {
	s := New(&stubSource{quote: &stocks.Quote{Symbol: "AAPL", Price: 241.5, Currency: "USD"}})

	got, err := s.Price(context.Background(), "aapl", "")
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	if got.Symbol != "AAPL" || got.Currency != "USD" {
		t.Fatalf("got %+v", got)
	}
}

func TestHistory_CountsPoints(t *testing.T) {
	src := &stubSource{history: []stocks.PricePoint{{Date: "2026-03-13"}, {Date: "2026-03-14"}}}
	s := New(src)

	got, err := s.History(context.Background(), "thyao.is", 0)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if got.Symbol != "THYAO.IS" || got.Days != 30 || got.Count != 2 {
		t.Fatalf("got %+v", got)
	}
	if src.historyDays != 30 {
		t.Fatalf("source days = %d", src.historyDays)
	}
}

func TestSearch_EmptyIsNotNil(t *testing.T) {
	s := New(&stubSource{})

	got := s.Search(context.Background(), "zzz")
	if got.Stocks == nil || got.Count != 0 {
		t.Fatalf("got %+v", got)
	}
}
