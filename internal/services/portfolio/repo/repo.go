// Package repo provides the Postgres repository for daily portfolio values
package repo

import (
	"context"
	"time"

	"assistant/internal/modkit/repokit"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// FundRow is one day of value for one fund, or the TOTAL aggregate.
// Units is nil on the aggregate row
type FundRow struct {
	SnapshotDate      string
	RecordedAt        time.Time
	FundCode          string
	FundName          string
	CurrentValue      float64
	InvestmentAmount  float64
	ProfitLoss        float64
	ProfitLossPercent float64
	Units             *float64
	CurrentPrice      float64
}

// StockRow is one day of value for one stock position
type StockRow struct {
	SnapshotDate      string
	RecordedAt        time.Time
	Symbol            string
	StockName         string
	CurrentValue      float64
	InvestmentAmount  float64
	ProfitLoss        float64
	ProfitLossPercent float64
	Units             float64
	CurrentPrice      float64
	Currency          string
}

// FundRef is a distinct fund that has history rows
type FundRef struct {
	Code string
	Name string
}

// Storage defines the portfolio history repository
type Storage interface {
	UpsertFundRow(ctx context.Context, row FundRow) error
	UpsertStockRow(ctx context.Context, row StockRow) error

	// FundRowsBetween returns rows for one code in [start, end], oldest first
	FundRowsBetween(ctx context.Context, start, end, fundCode string) ([]FundRow, error)

	// FundRowsAll returns every non-aggregate row, oldest first
	FundRowsAll(ctx context.Context, excludeCode string) ([]FundRow, error)

	DistinctFunds(ctx context.Context, excludeCode string) ([]FundRef, error)

	// LatestFundRow returns the newest row for a code, nil when none exist
	LatestFundRow(ctx context.Context, fundCode string) (*FundRow, error)
}

type pg struct{ q repokit.Queryer }

func (s *pg) UpsertFundRow(ctx context.Context, row FundRow) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO fund_daily_values
			(snapshot_date, recorded_at, fund_code, fund_name, current_value,
			 investment_amount, profit_loss, profit_loss_percent, units, current_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (fund_code, snapshot_date) DO UPDATE SET
			recorded_at         = EXCLUDED.recorded_at,
			fund_name           = EXCLUDED.fund_name,
			current_value       = EXCLUDED.current_value,
			investment_amount   = EXCLUDED.investment_amount,
			profit_loss         = EXCLUDED.profit_loss,
			profit_loss_percent = EXCLUDED.profit_loss_percent,
			units               = EXCLUDED.units,
			current_price       = EXCLUDED.current_price
	`, row.SnapshotDate, row.RecordedAt, row.FundCode, row.FundName, row.CurrentValue,
		row.InvestmentAmount, row.ProfitLoss, row.ProfitLossPercent, row.Units, row.CurrentPrice)
	return err
}

func (s *pg) UpsertStockRow(ctx context.Context, row StockRow) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO stock_daily_values
			(snapshot_date, recorded_at, symbol, stock_name, current_value,
			 investment_amount, profit_loss, profit_loss_percent, units, current_price, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (symbol, snapshot_date) DO UPDATE SET
			recorded_at         = EXCLUDED.recorded_at,
			stock_name          = EXCLUDED.stock_name,
			current_value       = EXCLUDED.current_value,
			investment_amount   = EXCLUDED.investment_amount,
			profit_loss         = EXCLUDED.profit_loss,
			profit_loss_percent = EXCLUDED.profit_loss_percent,
			units               = EXCLUDED.units,
			current_price       = EXCLUDED.current_price,
			currency            = EXCLUDED.currency
	`, row.SnapshotDate, row.RecordedAt, row.Symbol, row.StockName, row.CurrentValue,
		row.InvestmentAmount, row.ProfitLoss, row.ProfitLossPercent, row.Units, row.CurrentPrice, row.Currency)
	return err
}

const fundRowColumns = `
	snapshot_date, recorded_at, fund_code, fund_name, current_value,
	investment_amount, profit_loss, profit_loss_percent, units, current_price`

func scanFundRows(rows repokit.Rows) ([]FundRow, error) {
	defer rows.Close()

	var out []FundRow
	for rows.Next() {
		var r FundRow
		if err := rows.Scan(&r.SnapshotDate, &r.RecordedAt, &r.FundCode, &r.FundName, &r.CurrentValue,
			&r.InvestmentAmount, &r.ProfitLoss, &r.ProfitLossPercent, &r.Units, &r.CurrentPrice); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *pg) FundRowsBetween(ctx context.Context, start, end, fundCode string) ([]FundRow, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+fundRowColumns+`
		FROM fund_daily_values
		WHERE snapshot_date >= $1 AND snapshot_date <= $2 AND fund_code = $3
		ORDER BY snapshot_date ASC
	`, start, end, fundCode)
	if err != nil {
		return nil, err
	}
	return scanFundRows(rows)
}

func (s *pg) FundRowsAll(ctx context.Context, excludeCode string) ([]FundRow, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+fundRowColumns+`
		FROM fund_daily_values
		WHERE fund_code <> $1
		ORDER BY snapshot_date ASC
	`, excludeCode)
	if err != nil {
		return nil, err
	}
	return scanFundRows(rows)
}

func (s *pg) DistinctFunds(ctx context.Context, excludeCode string) ([]FundRef, error) {
	rows, err := s.q.Query(ctx, `
		SELECT DISTINCT ON (fund_code) fund_code, fund_name
		FROM fund_daily_values
		WHERE fund_code <> $1
		ORDER BY fund_code, snapshot_date DESC
	`, excludeCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FundRef
	for rows.Next() {
		var r FundRef
		if err := rows.Scan(&r.Code, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *pg) LatestFundRow(ctx context.Context, fundCode string) (*FundRow, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+fundRowColumns+`
		FROM fund_daily_values
		WHERE fund_code = $1
		ORDER BY snapshot_date DESC
		LIMIT 1
	`, fundCode)
	if err != nil {
		return nil, err
	}
	got, err := scanFundRows(rows)
	if err != nil || len(got) == 0 {
		return nil, err
	}
	return &got[0], nil
}
