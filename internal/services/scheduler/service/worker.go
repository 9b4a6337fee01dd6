package service

import (
	"context"
	"time"

	"assistant/internal/platform/logger"
)

// Run starts the sweep loop and blocks until the context is cancelled
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("scheduler-worker")
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			res, err := s.DailyCheck(ctx)
			if err != nil {
				log.Error().Err(err).Msg("daily check sweep failed")
				continue
			}
			log.Info().
				Int("processed", res.ProcessedUsers).
				Int("total", res.TotalUsers).
				Int("errors", len(res.Errors)).
				Msg("daily check sweep done")
		}
	}
}
