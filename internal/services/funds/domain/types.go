package domain

import "assistant/internal/adapters/market/tefas"

// HistoryResult is the fund history envelope
type HistoryResult struct {
	FundCode string             `json:"fund_code"`
	Days     int                `json:"days"`
	History  []tefas.PricePoint `json:"history"`
}

// SearchResult is the fund search envelope
type SearchResult struct {
	Query string              `json:"query"`
	Count int                 `json:"count"`
	Funds []tefas.FundSummary `json:"funds"`
}
