// Package tefas fetches Turkish mutual fund prices from the TEFAS
// BindHistoryInfo endpoint with retries and a static sample fallback
package tefas

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
)

const (
	baseURLDefault   = "https://www.tefas.gov.tr"
	historyPath      = "/api/DB/BindHistoryInfo"
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

// Client is a minimal TEFAS client
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
		log:   *logger.Named("tefas"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// FundPrice is one priced fund snapshot
type FundPrice struct {
	FundCode          string  `json:"fund_code"`
	FundName          string  `json:"fund_name"`
	Price             float64 `json:"price"`
	Date              string  `json:"date"`
	TotalValue        float64 `json:"total_value"`
	NumberOfShares    int64   `json:"number_of_shares"`
	NumberOfInvestors int64   `json:"number_of_investors"`
}

// PricePoint is one day of fund history
type PricePoint struct {
	Date           string  `json:"date"`
	Price          float64 `json:"price"`
	TotalValue     float64 `json:"total_value"`
	NumberOfShares int64   `json:"number_of_shares"`
}

// FundSummary is a search hit
type FundSummary struct {
	FundCode string  `json:"fund_code"`
	FundName string  `json:"fund_name"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
	FundType string  `json:"fund_type"`
}

// fundRow mirrors the upstream response rows. TARIH is epoch millis as
// a string
type fundRow struct {
	Date      string  `json:"TARIH"`
	Code      string  `json:"FONKODU"`
	Title     string  `json:"FONUNVAN"`
	Price     float64 `json:"FIYAT"`
	Shares    float64 `json:"TEDPAYSAYISI"`
	Investors float64 `json:"KISISAYISI"`
	MarketCap float64 `json:"PORTFOYBUYUKLUK"`
}

func (r fundRow) isoDate() string {
	ms, err := strconv.ParseInt(r.Date, 10, 64)
	if err != nil {
		return r.Date
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

// toUpstreamDate converts YYYY-MM-DD to the DD.MM.YYYY form the
// endpoint expects
func toUpstreamDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02.01.2006")
}

func (c *Client) shouldRetry(attempts int) bool { return attempts < c.opts.MaxRetries }

func (c *Client) backoff(attempts int) time.Duration {
	d := c.opts.RetryBase << attempts
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

// fetch posts a history query. An empty fund code asks for all funds
func (c *Client) fetch(ctx context.Context, fundCode, startISO, endISO string) ([]fundRow, error) {
	form := url.Values{}
	form.Set("fontip", "YAT")
	form.Set("fonkod", strings.ToUpper(fundCode))
	form.Set("bastarih", toUpstreamDate(startISO))
	form.Set("bittarih", toUpstreamDate(endISO))
	body := form.Encode()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+historyPath, strings.NewReader(body))
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "tefas new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "tefas do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("tefas transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("fund", fundCode).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("tefas http response")

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			if !c.shouldRetry(attempts) {
				return nil, perr.Unavailablef("tefas status %d", resp.StatusCode)
			}
			c.sleep(c.backoff(attempts))
			attempts++
			continue
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, perr.Unavailablef("tefas status %d", resp.StatusCode)
		}

		defer func() { _ = resp.Body.Close() }()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "tefas read failed")
		}
		var payload struct {
			Data []fundRow `json:"data"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "tefas decode failed")
		}
		return payload.Data, nil
	}
}

// Price returns the latest price for a fund, or the price on a given
// ISO date when one is supplied
func (c *Client) Price(ctx context.Context, fundCode, date string) (*FundPrice, error) {
	var rows []fundRow
	var err error
	if date == "" {
		end := c.now()
		rows, err = c.fetch(ctx, fundCode, end.AddDate(0, 0, -7).Format("2006-01-02"), end.Format("2006-01-02"))
	} else {
		rows, err = c.fetch(ctx, fundCode, date, date)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, perr.NotFoundf("fon verisi bulunamadı: %s", strings.ToUpper(fundCode))
	}

	// latest row wins when no date was pinned
	row := rows[len(rows)-1]
	if date != "" {
		row = rows[0]
	}
	return &FundPrice{
		FundCode:          strings.ToUpper(fundCode),
		FundName:          row.Title,
		Price:             row.Price,
		Date:              row.isoDate(),
		TotalValue:        row.MarketCap,
		NumberOfShares:    int64(row.Shares),
		NumberOfInvestors: int64(row.Investors),
	}, nil
}

// History returns up to days of fund price history, oldest first
func (c *Client) History(ctx context.Context, fundCode string, days int) ([]PricePoint, error) {
	if days <= 0 {
		days = 30
	}
	end := c.now()
	rows, err := c.fetch(ctx, fundCode, end.AddDate(0, 0, -days).Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	out := make([]PricePoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, PricePoint{
			Date:           r.isoDate(),
			Price:          r.Price,
			TotalValue:     r.MarketCap,
			NumberOfShares: int64(r.Shares),
		})
	}
	return out, nil
}

// Search looks a fund code up for today, an empty query lists the
// first twenty funds. Upstream failures fall back to a static sample
// list so the endpoint stays usable offline
func (c *Client) Search(ctx context.Context, query string) []FundSummary {
	today := c.now().Format("2006-01-02")

	rows, err := c.fetch(ctx, query, today, today)
	if err != nil || len(rows) == 0 {
		if err != nil {
			c.log.Warn().Err(err).Str("query", query).Msg("tefas search falling back to samples")
		}
		return sampleFunds(query, today)
	}

	limit := len(rows)
	if query == "" && limit > 20 {
		limit = 20
	}
	out := make([]FundSummary, 0, limit)
	for _, r := range rows[:limit] {
		out = append(out, FundSummary{
			FundCode: r.Code,
			FundName: r.Title,
			Price:    r.Price,
			Date:     r.isoDate(),
			FundType: "Yatırım Fonu",
		})
	}
	return out
}

// sampleFunds is the offline fallback list
func sampleFunds(query, date string) []FundSummary {
	all := []FundSummary{
		{FundCode: "TQE", FundName: "Tacirler Portföy Değişken Fon", Price: 0.05, Date: date, FundType: "Değişken Fon"},
		{FundCode: "GAH", FundName: "Garanti Portföy Altın Fonu", Price: 0.042, Date: date, FundType: "Değişken Fon"},
		{FundCode: "AKE", FundName: "Ak Portföy Eurobond Dolar Fonu", Price: 0.015, Date: date, FundType: "Borçlanma Araçları Fonu"},
		{FundCode: "YKT", FundName: "Yapı Kredi Portföy Teknoloji Sektörü Fonu", Price: 0.025, Date: date, FundType: "Hisse Senedi Fonu"},
		{FundCode: "IPG", FundName: "İş Portföy Gelişen Ülkeler Fonu", Price: 0.018, Date: date, FundType: "Hisse Senedi Fonu"},
	}
	if query == "" {
		return all
	}
	q := strings.ToUpper(query)
	out := make([]FundSummary, 0, len(all))
	for _, f := range all {
		if strings.Contains(f.FundCode, q) || strings.Contains(strings.ToUpper(f.FundName), q) {
			out = append(out, f)
		}
	}
	return out
}

// ProfitLoss is the computed position for one fund investment
type ProfitLoss struct {
	FundCode       string  `json:"fund_code"`
	FundName       string  `json:"fund_name"`
	PurchasePrice  float64 `json:"purchase_price"`
	CurrentPrice   float64 `json:"current_price"`
	Units          float64 `json:"units"`
	PurchaseAmount float64 `json:"purchase_amount"`
	CurrentValue   float64 `json:"current_value"`
	Profit         float64 `json:"profit_loss"`
	ProfitPercent  float64 `json:"profit_loss_percent"`
	Date           string  `json:"date"`
}

// CalculateProfitLoss prices a position against the latest fund price
func (c *Client) CalculateProfitLoss(ctx context.Context, fundCode string, purchasePrice, purchaseAmount float64, currentDate string) (*ProfitLoss, error) {
	current, err := c.Price(ctx, fundCode, currentDate)
	if err != nil {
		return nil, perr.Unavailablef("Fon verisi alınamadı. Lütfen fon kodunu kontrol edin veya daha sonra tekrar deneyin.")
	}
	if current.Price == 0 {
		return nil, perr.NotFoundf("Fon fiyatı bulunamadı")
	}
	if purchasePrice <= 0 {
		return nil, perr.InvalidArgf("alış fiyatı pozitif olmalı")
	}

	units := purchaseAmount / purchasePrice
	currentValue := units * current.Price
	profit := currentValue - purchaseAmount
	percent := profit / purchaseAmount * 100

	return &ProfitLoss{
		FundCode:       strings.ToUpper(fundCode),
		FundName:       current.FundName,
		PurchasePrice:  purchasePrice,
		CurrentPrice:   current.Price,
		Units:          round4(units),
		PurchaseAmount: purchaseAmount,
		CurrentValue:   round2(currentValue),
		Profit:         round2(profit),
		ProfitPercent:  round2(percent),
		Date:           current.Date,
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
