// Package service implements suggestion and memory persistence plus the
// daily generation flow
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"assistant/internal/core/directive"
	"assistant/internal/core/suggest"
	"assistant/internal/modkit/repokit"
	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
	"assistant/internal/services/suggestions/domain"
	"assistant/internal/services/suggestions/repo"
	snapdomain "assistant/internal/services/snapshot/domain"
)

// Service implements domain.WriterPort, domain.ReaderPort and domain.DailyPort
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[repo.Storage]
	Invoker domain.InvokerPort
	Snaps   snapdomain.ReaderPort

	log logger.Logger
	now func() time.Time
}

// New constructs a new suggestions service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], invoker domain.InvokerPort, snaps snapdomain.ReaderPort) *Service {
	return &Service{
		DB:      db,
		Binder:  b,
		Invoker: invoker,
		Snaps:   snaps,
		log:     *logger.Named("suggestions"),
		now:     time.Now,
	}
}

// suggestionID derives the deterministic row id. Batches resubmitted
// after a transient failure land on the same rows
func suggestionID(userID, targetDate, typ, seed string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(userID+":"+targetDate+":"+typ+":"+seed)).String()
}

func memoryID(userID, category, content string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(userID+":"+category+":"+content)).String()
}

// SaveSuggestions implements domain.WriterPort
func (s *Service) SaveSuggestions(ctx context.Context, userID string, items []suggest.Item, targetDate, source string) (int, error) {
	if userID == "" {
		return 0, perr.InvalidArgf("user id required")
	}
	if source == "" {
		source = "daily_suggestions"
	}

	ts := s.now().UTC()
	rows := make([]repo.SuggestionRow, 0, len(items))
	for _, it := range items {
		typ := strings.TrimSpace(it.Type)
		if typ == "" {
			typ = "note"
		}
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			continue
		}

		meta := it.Meta.ToMap()
		if targetDate != "" {
			if meta["date"] == "" {
				meta["date"] = targetDate
			}
			if meta["forDate"] == "" {
				meta["forDate"] = targetDate
			}
		}
		if meta["source"] == "" {
			meta["source"] = source
		}

		seed := meta["title"]
		if seed == "" {
			seed = meta["mealType"]
		}
		if seed == "" {
			seed = desc
		}

		id := uuid.NewString()
		if targetDate != "" {
			id = suggestionID(userID, targetDate, typ, seed)
		}

		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return 0, perr.Wrapf(err, perr.ErrorCodeJSON, "encode suggestion metadata")
		}
		rows = append(rows, repo.SuggestionRow{
			ID:          id,
			UserID:      userID,
			Type:        typ,
			Description: desc,
			Status:      "pending",
			Metadata:    metaJSON,
			CreatedAt:   ts,
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		for _, row := range rows {
			if err := st.UpsertSuggestion(ctx, row); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeDB, "upsert suggestion %s", row.ID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// SaveMemories implements domain.WriterPort
func (s *Service) SaveMemories(ctx context.Context, userID string, memories []directive.MemoryItem) (int, error) {
	if userID == "" {
		return 0, perr.InvalidArgf("user id required")
	}

	ts := s.now().UTC()
	rows := make([]repo.MemoryRow, 0, len(memories))
	for _, m := range memories {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		category := strings.TrimSpace(m.Category)
		if category == "" {
			category = "general"
		}
		rows = append(rows, repo.MemoryRow{
			ID:        memoryID(userID, category, content),
			UserID:    userID,
			Category:  category,
			Content:   content,
			CreatedAt: ts,
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		for _, row := range rows {
			if err := st.UpsertMemory(ctx, row); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeDB, "upsert memory %s", row.ID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// HasForDate implements domain.ReaderPort
func (s *Service) HasForDate(ctx context.Context, userID, targetDate string) (bool, error) {
	var exists bool
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		exists, err = s.Binder.Bind(q).HasForDate(ctx, userID, targetDate)
		return err
	})
	return exists, err
}

// PendingKeys implements domain.ReaderPort
func (s *Service) PendingKeys(ctx context.Context, userID string) (map[string]bool, error) {
	var rows []repo.SuggestionRow
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, err = s.Binder.Bind(q).PendingByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	keys := make(map[string]bool, len(rows))
	for _, r := range rows {
		meta := map[string]string{}
		if len(r.Metadata) > 0 {
			// rows with unreadable metadata still dedup on type and description
			_ = json.Unmarshal(r.Metadata, &meta)
		}
		keys[suggest.Key(suggest.Item{
			Type:        r.Type,
			Description: r.Description,
			Meta:        suggest.FromMap(meta),
		})] = true
	}
	return keys, nil
}
