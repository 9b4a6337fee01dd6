// Package service implements combined portfolio pricing and history
package service

import (
	"context"
	"math"
	"time"

	"assistant/internal/modkit/repokit"
	"assistant/internal/platform/logger"
	"assistant/internal/services/portfolio/domain"
	"assistant/internal/services/portfolio/repo"
)

// totalFundCode keys the aggregate portfolio row in fund_daily_values
const totalFundCode = "TOTAL"

const totalFundName = "Toplam Portföy"

// Service implements domain.PortfolioPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Funds  domain.FundMarketPort
	Stocks domain.StockMarketPort

	log logger.Logger
	now func() time.Time
}

// New constructs a new portfolio service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], funds domain.FundMarketPort, stocks domain.StockMarketPort) *Service {
	return &Service{
		DB:     db,
		Binder: b,
		Funds:  funds,
		Stocks: stocks,
		log:    *logger.Named("portfolio"),
		now:    time.Now,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Calculate implements domain.PortfolioPort. Positions that cannot be
// priced are skipped, the snapshot write never fails the response
func (s *Service) Calculate(ctx context.Context, in domain.CalculateInput) (domain.Summary, error) {
	var totalInvestment, totalValue float64
	funds := make([]domain.FundDetail, 0, len(in.FundInvestments))
	stocks := make([]domain.StockDetail, 0, len(in.StockInvestments))

	for _, inv := range in.FundInvestments {
		res, err := s.Funds.CalculateProfitLoss(ctx, inv.FundCode, inv.PurchasePrice, inv.InvestmentAmount, "")
		if err != nil {
			s.log.Warn().Err(err).Str("fund", inv.FundCode).Msg("fund position skipped")
			continue
		}
		totalInvestment += inv.InvestmentAmount
		totalValue += res.CurrentValue

		funds = append(funds, domain.FundDetail{
			FundCode:          res.FundCode,
			FundName:          res.FundName,
			InvestmentAmount:  inv.InvestmentAmount,
			CurrentValue:      res.CurrentValue,
			ProfitLoss:        res.Profit,
			ProfitLossPercent: res.ProfitPercent,
			PurchasePrice:     inv.PurchasePrice,
			CurrentPrice:      res.CurrentPrice,
			Units:             res.Units,
		})
	}

	for _, inv := range in.StockInvestments {
		res, err := s.Stocks.CalculateProfitLoss(ctx, inv.Symbol, inv.PurchasePrice, inv.InvestmentAmount, "")
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", inv.Symbol).Msg("stock position skipped")
			continue
		}
		totalInvestment += inv.InvestmentAmount
		totalValue += res.CurrentValue

		stocks = append(stocks, domain.StockDetail{
			Symbol:            res.Symbol,
			StockName:         res.StockName,
			InvestmentAmount:  inv.InvestmentAmount,
			CurrentValue:      res.CurrentValue,
			ProfitLoss:        res.Profit,
			ProfitLossPercent: res.ProfitPercent,
			PurchasePrice:     inv.PurchasePrice,
			CurrentPrice:      res.CurrentPrice,
			Units:             res.Units,
			Currency:          res.Currency,
		})
	}

	totalProfit := totalValue - totalInvestment
	percent := 0.0
	if totalInvestment > 0 {
		percent = totalProfit / totalInvestment * 100
	}

	summary := domain.Summary{
		TotalInvestment:   round2(totalInvestment),
		CurrentValue:      round2(totalValue),
		TotalProfitLoss:   round2(totalProfit),
		ProfitLossPercent: round2(percent),
		DailyChange:       0,
		Funds:             funds,
		Stocks:            stocks,
	}

	if err := s.recordSnapshot(ctx, summary); err != nil {
		s.log.Warn().Err(err).Msg("portfolio snapshot not recorded")
	}
	return summary, nil
}

// recordSnapshot upserts one row per position plus the TOTAL aggregate,
// keyed on (code, snapshot date) so repeat calculations in a day overwrite
func (s *Service) recordSnapshot(ctx context.Context, summary domain.Summary) error {
	recordedAt := s.now().UTC()
	snapshotDate := recordedAt.Format("2006-01-02")

	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)

		for _, f := range summary.Funds {
			units := f.Units
			if err := st.UpsertFundRow(ctx, repo.FundRow{
				SnapshotDate:      snapshotDate,
				RecordedAt:        recordedAt,
				FundCode:          f.FundCode,
				FundName:          f.FundName,
				CurrentValue:      f.CurrentValue,
				InvestmentAmount:  f.InvestmentAmount,
				ProfitLoss:        f.ProfitLoss,
				ProfitLossPercent: f.ProfitLossPercent,
				Units:             &units,
				CurrentPrice:      f.CurrentPrice,
			}); err != nil {
				return err
			}
		}

		if err := st.UpsertFundRow(ctx, repo.FundRow{
			SnapshotDate:      snapshotDate,
			RecordedAt:        recordedAt,
			FundCode:          totalFundCode,
			FundName:          totalFundName,
			CurrentValue:      summary.CurrentValue,
			InvestmentAmount:  summary.TotalInvestment,
			ProfitLoss:        summary.TotalProfitLoss,
			ProfitLossPercent: summary.ProfitLossPercent,
		}); err != nil {
			return err
		}

		for _, d := range summary.Stocks {
			if err := st.UpsertStockRow(ctx, repo.StockRow{
				SnapshotDate:      snapshotDate,
				RecordedAt:        recordedAt,
				Symbol:            d.Symbol,
				StockName:         d.StockName,
				CurrentValue:      d.CurrentValue,
				InvestmentAmount:  d.InvestmentAmount,
				ProfitLoss:        d.ProfitLoss,
				ProfitLossPercent: d.ProfitLossPercent,
				Units:             d.Units,
				CurrentPrice:      d.CurrentPrice,
				Currency:          d.Currency,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
