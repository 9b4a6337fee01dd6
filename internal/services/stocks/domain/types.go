package domain

import "assistant/internal/adapters/market/stocks"

// HistoryResult is the stock history envelope
type HistoryResult struct {
	Symbol  string              `json:"symbol"`
	Days    int                 `json:"days"`
	Count   int                 `json:"count"`
	History []stocks.PricePoint `json:"history"`
}

// SearchResult is the stock search envelope
type SearchResult struct {
	Query  string                   `json:"query"`
	Count  int                      `json:"count"`
	Stocks []stocks.StockSuggestion `json:"stocks"`
}
