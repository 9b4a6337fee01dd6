// Package service renders and dispatches the digest emails
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"assistant/internal/core/scope"
	"assistant/internal/modkit/repokit"
	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
	"assistant/internal/services/digest/domain"
	"assistant/internal/services/digest/repo"
	snapdomain "assistant/internal/services/snapshot/domain"
)

const (
	typeFriendSummary   = "friend_summary"
	typePersonalSummary = "personal_summary"
)

// Service implements domain.DigestPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Mailer domain.MailerPort
	Snaps  snapdomain.ReaderPort

	log logger.Logger
	now func() time.Time
}

// New constructs a new digest service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], mailer domain.MailerPort, snaps snapdomain.ReaderPort) *Service {
	return &Service{
		DB:     db,
		Binder: b,
		Mailer: mailer,
		Snaps:  snaps,
		log:    *logger.Named("digest"),
		now:    time.Now,
	}
}

// SendDailySummary implements domain.DigestPort. Recipients with no
// tasks to report count as sent without touching the mailer
func (s *Service) SendDailySummary(ctx context.Context, in domain.DailySummaryInput) (domain.EmailResult, error) {
	details := []domain.SendDetail{}
	if len(in.Recipients) == 0 {
		return domain.EmailResult{Success: true, Details: details}, nil
	}

	date := in.Date
	if date == "" {
		date = s.now().Format("02.01.2006")
	}
	subject := fmt.Sprintf("📋 %s'dan Günlük Görev Özeti - %s", in.UserName, date)

	sent, failed := 0, 0
	for _, rcpt := range in.Recipients {
		if len(in.Tasks) == 0 {
			sent++
			details = append(details, domain.SendDetail{Recipient: rcpt.Email, Status: "sent", Message: "Email sent successfully"})
			continue
		}

		html, err := renderFriendSummary(rcpt.Name, in.UserName, date, in.Tasks)
		if err == nil {
			err = s.Mailer.Send(ctx, rcpt.Email, subject, html)
		}
		if err != nil {
			s.log.Warn().Err(err).Str("recipient", rcpt.Email).Msg("summary email failed")
			failed++
			details = append(details, domain.SendDetail{Recipient: rcpt.Email, Status: "failed", Message: "Failed to send email"})
			continue
		}
		sent++
		details = append(details, domain.SendDetail{Recipient: rcpt.Email, Status: "sent", Message: "Email sent successfully"})
	}

	return domain.EmailResult{
		Success:     failed == 0,
		SentCount:   sent,
		FailedCount: failed,
		Details:     details,
	}, nil
}

func day(raw string) string {
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

func section[T any](doc snapdomain.Document, key string) []T {
	raw, ok := doc[key]
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func (s *Service) emailSettings(doc snapdomain.Document) *domain.EmailSettings {
	raw, ok := doc["emailSettings"]
	if !ok {
		return nil
	}
	var out domain.EmailSettings
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return &out
}

func tasksForDay(doc snapdomain.Document, dayISO string) []scope.Task {
	var out []scope.Task
	for _, t := range section[scope.Task](doc, "tasks") {
		if day(t.StartDate) == dayISO {
			out = append(out, t)
		}
	}
	return out
}

func mealsForDay(doc snapdomain.Document, dayISO string) []scope.Meal {
	var out []scope.Meal
	for _, m := range section[scope.Meal](doc, "mealEntries") {
		if day(m.Date) == dayISO {
			out = append(out, m)
		}
	}
	return out
}

func (s *Service) wasSentOn(ctx context.Context, userID, emailType, dayISO string) (bool, error) {
	var sent bool
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		sent, err = s.Binder.Bind(q).WasSentOn(ctx, userID, emailType, dayISO)
		return err
	})
	return sent, err
}

func (s *Service) markSent(ctx context.Context, userID, emailType, dayISO string) {
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).MarkSent(ctx, repo.LogRow{
			ID:        uuid.NewString(),
			UserID:    userID,
			EmailType: emailType,
			SentDate:  dayISO,
			SentAt:    s.now().UTC(),
		})
	})
	if err != nil {
		// a concurrent sweep writing the same marker is fine
		if perr.IsDuplicateKey(err) {
			return
		}
		s.log.Warn().Err(err).Str("user", userID).Str("type", emailType).Msg("send marker not recorded")
	}
}

// SendFriendDigest implements domain.DigestPort. The day marker is set
// after dispatch even on partial failure so friends are not re-mailed
func (s *Service) SendFriendDigest(ctx context.Context, userID string) error {
	today := s.now().UTC().Format("2006-01-02")

	sent, err := s.wasSentOn(ctx, userID, typeFriendSummary, today)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "friend digest marker read failed")
	}
	if sent {
		return nil
	}

	doc, err := s.Snaps.Load(ctx, userID)
	if err != nil {
		return err
	}
	settings := s.emailSettings(doc)
	if settings == nil || len(settings.Friends) == 0 {
		return nil
	}
	userName := settings.UserName
	if userName == "" {
		userName = "User"
	}

	res, err := s.SendDailySummary(ctx, domain.DailySummaryInput{
		UserName:   userName,
		Tasks:      tasksForDay(doc, today),
		Recipients: settings.Friends,
		Date:       s.now().Format("02.01.2006"),
	})
	if err != nil {
		return err
	}
	if !res.Success {
		s.log.Warn().Str("user", userID).Int("failed", res.FailedCount).Msg("friend digest partially failed")
	}

	s.markSent(ctx, userID, typeFriendSummary, today)
	return nil
}

// SendPersonalDigest implements domain.DigestPort. The marker is set
// only after a successful send so delivery retries on the next sweep
func (s *Service) SendPersonalDigest(ctx context.Context, userID string) error {
	today := s.now().UTC().Format("2006-01-02")

	sent, err := s.wasSentOn(ctx, userID, typePersonalSummary, today)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "personal digest marker read failed")
	}
	if sent {
		return nil
	}

	doc, err := s.Snaps.Load(ctx, userID)
	if err != nil {
		return err
	}
	settings := s.emailSettings(doc)
	if settings == nil || settings.PersonalEmail == "" {
		return nil
	}
	userName := settings.UserName
	if userName == "" {
		userName = "User"
	}

	display := s.now().Format("02.01.2006")
	html, err := renderPersonalSummary(userName, display, tasksForDay(doc, today), mealsForDay(doc, today))
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("🌅 Günlük Planınız - %s", display)
	if err := s.Mailer.Send(ctx, settings.PersonalEmail, subject, html); err != nil {
		return err
	}

	s.markSent(ctx, userID, typePersonalSummary, today)
	return nil
}
