package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"assistant/internal/modkit/repokit"
	perr "assistant/internal/platform/errors"
	"assistant/internal/services/portfolio/domain"
	"assistant/internal/services/portfolio/repo"
)

var rangeDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
	"year":  365,
}

func midnightUTC(dayISO string) time.Time {
	t, err := time.Parse("2006-01-02", dayISO)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Service) withStore(ctx context.Context, fn func(st repo.Storage) error) error {
	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return fn(s.Binder.Bind(q))
	})
}

// History implements domain.PortfolioPort. Days missing from storage are
// backfilled from the fund price source before the series is returned
func (s *Service) History(ctx context.Context, rangeKey, fundCode string) (domain.HistoryResponse, error) {
	if rangeKey == "" {
		rangeKey = "month"
	}
	days, ok := rangeDays[rangeKey]
	if !ok {
		return domain.HistoryResponse{}, perr.InvalidArgf("invalid range: %s", rangeKey)
	}

	today := s.now().UTC()
	end := today.Format("2006-01-02")
	start := end
	if days > 1 {
		start = today.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	}

	selected := strings.ToUpper(fundCode)
	if selected == "" {
		selected = totalFundCode
	}

	var rows []repo.FundRow
	err := s.withStore(ctx, func(st repo.Storage) error {
		var err error
		rows, err = st.FundRowsBetween(ctx, start, end, selected)
		return err
	})
	if err != nil {
		return domain.HistoryResponse{}, perr.Wrapf(err, perr.ErrorCodeDB, "portfolio history read failed")
	}

	rows = s.ensureContinuousRows(ctx, rows, start, end, selected)

	points := make([]domain.HistoryPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, domain.HistoryPoint{
			Timestamp:  midnightUTC(r.SnapshotDate),
			TotalValue: r.CurrentValue,
			FundCode:   r.FundCode,
		})
	}
	changeValue, changePercent := calculateChange(points)

	out := domain.HistoryResponse{
		Range:          rangeKey,
		StartDate:      midnightUTC(start),
		EndDate:        midnightUTC(end),
		Points:         points,
		ChangeValue:    changeValue,
		ChangePercent:  changePercent,
		AvailableFunds: s.availableFunds(ctx),
		Performances:   s.performances(ctx),
	}
	if selected != totalFundCode {
		out.FundCode = selected
	}
	return out, nil
}

// ensureContinuousRows fills every day of the window, computing missing
// days from the price source when enough context exists
func (s *Service) ensureContinuousRows(ctx context.Context, rows []repo.FundRow, start, end, fundCode string) []repo.FundRow {
	existing := make(map[string]bool, len(rows))
	for _, r := range rows {
		existing[r.SnapshotDate] = true
	}

	out := append([]repo.FundRow(nil), rows...)
	from := midnightUTC(start)
	to := midnightUTC(end)
	for cursor := from; !cursor.After(to); cursor = cursor.AddDate(0, 0, 1) {
		key := cursor.Format("2006-01-02")
		if existing[key] {
			continue
		}
		if row := s.backfillDay(ctx, fundCode, key); row != nil {
			existing[key] = true
			out = append(out, *row)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SnapshotDate < out[j].SnapshotDate })
	return out
}

// backfillDay reconstructs one missing day. For the aggregate code it
// recurses over every known fund and sums the results
func (s *Service) backfillDay(ctx context.Context, fundCode, dayISO string) *repo.FundRow {
	if fundCode == totalFundCode {
		var refs []repo.FundRef
		if err := s.withStore(ctx, func(st repo.Storage) error {
			var err error
			refs, err = st.DistinctFunds(ctx, totalFundCode)
			return err
		}); err != nil {
			s.log.Warn().Err(err).Msg("distinct funds read failed")
			return nil
		}

		var totalValue, totalInvestment float64
		for _, ref := range refs {
			if row := s.backfillDay(ctx, ref.Code, dayISO); row != nil {
				totalValue += row.CurrentValue
				totalInvestment += row.InvestmentAmount
			}
		}
		if totalValue == 0 {
			return nil
		}

		profit := totalValue - totalInvestment
		percent := 0.0
		if totalInvestment > 0 {
			percent = profit / totalInvestment * 100
		}
		row := repo.FundRow{
			SnapshotDate:      dayISO,
			RecordedAt:        s.now().UTC(),
			FundCode:          totalFundCode,
			FundName:          totalFundName,
			CurrentValue:      round2(totalValue),
			InvestmentAmount:  round2(totalInvestment),
			ProfitLoss:        round2(profit),
			ProfitLossPercent: round2(percent),
		}
		s.persistBackfill(ctx, row)
		return &row
	}

	var latest *repo.FundRow
	if err := s.withStore(ctx, func(st repo.Storage) error {
		var err error
		latest, err = st.LatestFundRow(ctx, fundCode)
		return err
	}); err != nil {
		s.log.Warn().Err(err).Str("fund", fundCode).Msg("latest row read failed")
		return nil
	}
	if latest == nil || latest.Units == nil || *latest.Units == 0 {
		return nil
	}

	price, err := s.Funds.Price(ctx, fundCode, dayISO)
	if err != nil || price.Price == 0 {
		return nil
	}

	units := *latest.Units
	currentValue := round2(units * price.Price)
	profit := round2(currentValue - latest.InvestmentAmount)
	percent := 0.0
	if latest.InvestmentAmount > 0 {
		percent = profit / latest.InvestmentAmount * 100
	}

	row := repo.FundRow{
		SnapshotDate:      dayISO,
		RecordedAt:        s.now().UTC(),
		FundCode:          fundCode,
		FundName:          latest.FundName,
		CurrentValue:      currentValue,
		InvestmentAmount:  latest.InvestmentAmount,
		ProfitLoss:        profit,
		ProfitLossPercent: round2(percent),
		Units:             &units,
		CurrentPrice:      price.Price,
	}
	s.persistBackfill(ctx, row)
	return &row
}

func (s *Service) persistBackfill(ctx context.Context, row repo.FundRow) {
	if err := s.withStore(ctx, func(st repo.Storage) error {
		return st.UpsertFundRow(ctx, row)
	}); err != nil {
		s.log.Warn().Err(err).Str("fund", row.FundCode).Str("date", row.SnapshotDate).Msg("backfill row not persisted")
	}
}

func calculateChange(points []domain.HistoryPoint) (float64, float64) {
	if len(points) < 2 {
		return 0, 0
	}
	startValue := points[0].TotalValue
	endValue := points[len(points)-1].TotalValue
	changeValue := round2(endValue - startValue)
	changePercent := 0.0
	if startValue != 0 {
		changePercent = round2(changeValue / startValue * 100)
	}
	return changeValue, changePercent
}

func (s *Service) availableFunds(ctx context.Context) []domain.FundReference {
	out := []domain.FundReference{{FundCode: totalFundCode, FundName: totalFundName}}

	var refs []repo.FundRef
	if err := s.withStore(ctx, func(st repo.Storage) error {
		var err error
		refs, err = st.DistinctFunds(ctx, totalFundCode)
		return err
	}); err != nil {
		s.log.Warn().Err(err).Msg("available funds read failed")
		return out
	}
	for _, ref := range refs {
		out = append(out, domain.FundReference{FundCode: ref.Code, FundName: ref.Name})
	}
	return out
}

// performances summarizes each fund's value change over fixed lookbacks
func (s *Service) performances(ctx context.Context) []domain.FundPerformance {
	var rows []repo.FundRow
	if err := s.withStore(ctx, func(st repo.Storage) error {
		var err error
		rows, err = st.FundRowsAll(ctx, totalFundCode)
		return err
	}); err != nil {
		s.log.Warn().Err(err).Msg("performance rows read failed")
		return []domain.FundPerformance{}
	}

	grouped := make(map[string][]repo.FundRow)
	var order []string
	for _, r := range rows {
		if _, seen := grouped[r.FundCode]; !seen {
			order = append(order, r.FundCode)
		}
		grouped[r.FundCode] = append(grouped[r.FundCode], r)
	}

	today := s.now().UTC()
	out := make([]domain.FundPerformance, 0, len(order))
	for _, code := range order {
		items := grouped[code]
		latest := items[len(items)-1]

		valueDaysAgo := func(days int) float64 {
			target := today.AddDate(0, 0, -days).Format("2006-01-02")
			for i := len(items) - 1; i >= 0; i-- {
				if items[i].SnapshotDate <= target {
					return items[i].CurrentValue
				}
			}
			return items[0].CurrentValue
		}
		change := func(days int) float64 {
			return round2(latest.CurrentValue - valueDaysAgo(days))
		}

		out = append(out, domain.FundPerformance{
			FundCode:      code,
			FundName:      latest.FundName,
			LatestValue:   latest.CurrentValue,
			DailyChange:   change(1),
			WeeklyChange:  change(7),
			MonthlyChange: change(30),
			YearlyChange:  change(365),
		})
	}
	return out
}
