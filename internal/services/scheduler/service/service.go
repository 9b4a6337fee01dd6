// Package service implements the daily sweep over all users
package service

import (
	"context"
	"time"

	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"

	digestdom "assistant/internal/services/digest/domain"
	dom "assistant/internal/services/scheduler/domain"
	snapdom "assistant/internal/services/snapshot/domain"
	sugdom "assistant/internal/services/suggestions/domain"
)

// Config controls the sweep worker
type Config struct {
	// Interval between sweeps; every step is idempotent per day so a
	// short interval only costs marker reads
	Interval time.Duration
}

// Svc implements the sweep and worker ports
type Svc struct {
	snaps  snapdom.ReaderPort
	daily  sugdom.DailyPort
	digest digestdom.DigestPort

	cfg Config
	log logger.Logger
	now func() time.Time
}

// New constructs the service
func New(snaps snapdom.ReaderPort, daily sugdom.DailyPort, digest digestdom.DigestPort, cfg Config) *Svc {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	return &Svc{
		snaps:  snaps,
		daily:  daily,
		digest: digest,
		cfg:    cfg,
		log:    *logger.Named("scheduler"),
		now:    time.Now,
	}
}

// DailyCheck implements dom.SweepPort. Per-user failures are collected,
// one bad user never stops the sweep
func (s *Svc) DailyCheck(ctx context.Context) (dom.SweepResult, error) {
	ids, err := s.snaps.Users(ctx)
	if err != nil {
		return dom.SweepResult{}, perr.Wrapf(err, perr.ErrorCodeDB, "user listing failed")
	}

	today := s.now().UTC().Format("2006-01-02")
	processed := 0
	errors := []dom.SweepError{}

	for _, userID := range ids {
		if err := s.checkUser(ctx, userID, today); err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("daily check failed")
			errors = append(errors, dom.SweepError{UserID: userID, Error: err.Error()})
			continue
		}
		processed++
	}

	return dom.SweepResult{
		Success:        true,
		ProcessedUsers: processed,
		TotalUsers:     len(ids),
		Errors:         errors,
	}, nil
}

func (s *Svc) checkUser(ctx context.Context, userID, today string) error {
	// suggestions target the current day here, the manual endpoint
	// defaults to tomorrow
	if _, err := s.daily.GenerateDaily(ctx, userID, sugdom.DailyInput{TargetDate: today}); err != nil {
		return err
	}
	if err := s.digest.SendFriendDigest(ctx, userID); err != nil {
		return err
	}
	return s.digest.SendPersonalDigest(ctx, userID)
}
