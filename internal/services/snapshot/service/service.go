// Package service implements snapshot backup and restore
package service

import (
	"context"
	"encoding/json"

	"assistant/internal/modkit/repokit"
	perr "assistant/internal/platform/errors"
	"assistant/internal/services/snapshot/domain"
	"assistant/internal/services/snapshot/repo"
)

// Service implements domain.ReaderPort and domain.WriterPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

// New constructs a new snapshot service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage]) *Service {
	return &Service{DB: db, Binder: b}
}

// Save implements domain.WriterPort, all sections land in one transaction
func (s *Service) Save(ctx context.Context, userID string, doc domain.Document) error {
	if userID == "" {
		return perr.InvalidArgf("user id required")
	}
	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		for section, payload := range doc {
			if len(payload) == 0 {
				payload = json.RawMessage("null")
			}
			if err := st.UpsertSection(ctx, userID, section, payload); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeDB, "save section %s", section)
			}
		}
		return nil
	})
}

// Load implements domain.ReaderPort
func (s *Service) Load(ctx context.Context, userID string) (domain.Document, error) {
	if userID == "" {
		return nil, perr.InvalidArgf("user id required")
	}
	var sections map[string][]byte
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		sections, err = s.Binder.Bind(q).Sections(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	doc := make(domain.Document, len(sections))
	for section, payload := range sections {
		doc[section] = json.RawMessage(payload)
	}
	return doc, nil
}

// Users implements domain.ReaderPort
func (s *Service) Users(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		ids, err = s.Binder.Bind(q).UserIDs(ctx)
		return err
	})
	return ids, err
}
