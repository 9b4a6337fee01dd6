// Package stocks quotes equities off the Yahoo Finance chart endpoint.
// Covers Istanbul tickers with the .IS suffix as well as US and other
// global markets
package stocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
)

const (
	baseURLDefault   = "https://query1.finance.yahoo.com"
	chartPath        = "/v8/finance/chart/"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "assistant-market"
	defaultMaxRetry  = 4
	defaultRetryBase = 500 * time.Millisecond
	maxBackoff       = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal Yahoo Finance chart client
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("stocks"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Quote is one priced symbol snapshot
type Quote struct {
	Symbol    string  `json:"symbol"`
	StockName string  `json:"stock_name"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Date      string  `json:"date"`
	Market    string  `json:"market"`
}

// PricePoint is one day of stock history
type PricePoint struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume int64   `json:"volume"`
}

// chartResponse mirrors the slice of the upstream payload we consume
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency  string `json:"currency"`
				Symbol    string `json:"symbol"`
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) shouldRetry(attempts int) bool { return attempts < c.opts.MaxRetries }

func (c *Client) backoff(attempts int) time.Duration {
	d := c.opts.RetryBase << attempts
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

func (c *Client) fetchChart(ctx context.Context, symbol string, start, end time.Time) (*chartResponse, error) {
	url := fmt.Sprintf("%s%s%s?interval=1d&period1=%d&period2=%d",
		c.opts.BaseURL, chartPath, strings.ToUpper(symbol), start.Unix(), end.Unix())

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "stocks new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "stocks do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("stocks transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			if !c.shouldRetry(attempts) {
				return nil, perr.Unavailablef("stocks status %d", resp.StatusCode)
			}
			c.sleep(c.backoff(attempts))
			attempts++
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			_ = resp.Body.Close()
			return nil, perr.NotFoundf("symbol not found: %s", strings.ToUpper(symbol))
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, perr.Unavailablef("stocks status %d", resp.StatusCode)
		}

		raw, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "stocks read failed")
		}
		var payload chartResponse
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "stocks decode failed")
		}
		if payload.Chart.Error != nil {
			return nil, perr.NotFoundf("symbol not found: %s", strings.ToUpper(symbol))
		}
		return &payload, nil
	}
}

// Price returns the latest close for a symbol, or the close on a given
// ISO date when supplied
func (c *Client) Price(ctx context.Context, symbol, date string) (*Quote, error) {
	var start, end time.Time
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, perr.InvalidArgf("invalid date %q", date)
		}
		start, end = day, day.AddDate(0, 0, 1)
	} else {
		end = c.now()
		start = end.AddDate(0, 0, -7)
	}

	payload, err := c.fetchChart(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	points := chartPoints(payload)
	if len(points) == 0 {
		return nil, perr.NotFoundf("no price data for symbol: %s", strings.ToUpper(symbol))
	}
	last := points[len(points)-1]

	meta := payload.Chart.Result[0].Meta
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = strings.ToUpper(symbol)
	}
	currency := meta.Currency
	if currency == "" {
		currency = "USD"
	}

	return &Quote{
		Symbol:    strings.ToUpper(symbol),
		StockName: name,
		Price:     last.Price,
		Currency:  currency,
		Date:      last.Date,
		Market:    Market(symbol),
	}, nil
}

// History returns up to days of daily price points, oldest first
func (c *Client) History(ctx context.Context, symbol string, days int) ([]PricePoint, error) {
	if days <= 0 {
		days = 30
	}
	end := c.now()
	payload, err := c.fetchChart(ctx, symbol, end.AddDate(0, 0, -days), end)
	if err != nil {
		return nil, err
	}
	return chartPoints(payload), nil
}

// chartPoints flattens the parallel arrays of a chart response,
// skipping days with no close
func chartPoints(payload *chartResponse) []PricePoint {
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil
	}
	res := payload.Chart.Result[0]
	q := res.Indicators.Quote[0]

	deref := func(vals []*float64, i int) float64 {
		if i < len(vals) && vals[i] != nil {
			return *vals[i]
		}
		return 0
	}

	out := make([]PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		var vol int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			vol = *q.Volume[i]
		}
		out = append(out, PricePoint{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Price:  *q.Close[i],
			Open:   deref(q.Open, i),
			High:   deref(q.High, i),
			Low:    deref(q.Low, i),
			Volume: vol,
		})
	}
	return out
}

// Market derives the exchange from a symbol suffix
func Market(symbol string) string {
	s := strings.ToUpper(symbol)
	switch {
	case strings.HasSuffix(s, ".IS"):
		return "IST"
	case strings.HasSuffix(s, ".L"):
		return "LSE"
	case strings.HasSuffix(s, ".HK"):
		return "HKEX"
	case strings.HasSuffix(s, ".T"):
		return "TSE"
	default:
		return "NYSE"
	}
}

// StockSuggestion is one search hit
type StockSuggestion struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// commonStocks backs search, the chart endpoint has no symbol lookup
var commonStocks = []StockSuggestion{
	{Symbol: "AAPL", Name: "Apple Inc.", Market: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Market: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Market: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Market: "NASDAQ"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Market: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Market: "NASDAQ"},
	{Symbol: "THYAO.IS", Name: "Türk Hava Yolları", Market: "IST"},
	{Symbol: "GARAN.IS", Name: "Garanti BBVA", Market: "IST"},
	{Symbol: "ASELS.IS", Name: "Aselsan", Market: "IST"},
	{Symbol: "EREGL.IS", Name: "Ereğli Demir Çelik", Market: "IST"},
	{Symbol: "KCHOL.IS", Name: "Koç Holding", Market: "IST"},
	{Symbol: "SISE.IS", Name: "Şişecam", Market: "IST"},
}

// Search filters the common-stock list by symbol or name
func (c *Client) Search(_ context.Context, query string) []StockSuggestion {
	if query == "" {
		return commonStocks
	}
	q := strings.ToUpper(query)
	out := make([]StockSuggestion, 0, len(commonStocks))
	for _, s := range commonStocks {
		if strings.Contains(s.Symbol, q) || strings.Contains(strings.ToUpper(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

// ProfitLoss is the computed position for one stock investment
type ProfitLoss struct {
	Symbol           string  `json:"symbol"`
	StockName        string  `json:"stock_name"`
	Units            float64 `json:"units"`
	PurchasePrice    float64 `json:"purchase_price"`
	CurrentPrice     float64 `json:"current_price"`
	InvestmentAmount float64 `json:"investment_amount"`
	CurrentValue     float64 `json:"current_value"`
	Profit           float64 `json:"profit_loss"`
	ProfitPercent    float64 `json:"profit_loss_percent"`
	Currency         string  `json:"currency"`
}

// CalculateProfitLoss prices a position against the latest quote
func (c *Client) CalculateProfitLoss(ctx context.Context, symbol string, purchasePrice, purchaseAmount float64, currentDate string) (*ProfitLoss, error) {
	if purchasePrice <= 0 {
		return nil, perr.InvalidArgf("purchase price must be positive")
	}
	quote, err := c.Price(ctx, symbol, currentDate)
	if err != nil {
		return nil, perr.Unavailablef("Could not fetch price for %s", strings.ToUpper(symbol))
	}

	units := purchaseAmount / purchasePrice
	currentValue := units * quote.Price
	profit := currentValue - purchaseAmount
	percent := 0.0
	if purchaseAmount > 0 {
		percent = profit / purchaseAmount * 100
	}

	return &ProfitLoss{
		Symbol:           strings.ToUpper(symbol),
		StockName:        quote.StockName,
		Units:            round4(units),
		PurchasePrice:    round4(purchasePrice),
		CurrentPrice:     round4(quote.Price),
		InvestmentAmount: round2(purchaseAmount),
		CurrentValue:     round2(currentValue),
		Profit:           round2(profit),
		ProfitPercent:    round2(percent),
		Currency:         quote.Currency,
	}, nil
}

func round2(v float64) float64 { return float64(int64(v*100+sign(v)*0.5)) / 100 }

func round4(v float64) float64 { return float64(int64(v*10000+sign(v)*0.5)) / 10000 }

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
