// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lottery

import (
	"context"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
)

// Service implements draw configuration management, public resolution and
// the draw record ledger on top of a storage.Store.
type Service struct {
	store       storage.Store
	src         draw.Source
	now         func() time.Time
	recordLimit int
	shareSalt   string
	tokenSecret string
	tokenTTL    time.Duration
	adminEmails map[string]bool
}

type Option func(*Service)

// WithSource replaces the randomness used by server-side draws. The source
// is wrapped so it may be shared between requests.
func WithSource(src draw.Source) Option {
	return func(s *Service) { s.src = draw.NewLockedSource(src) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRecordLimit caps the page size of record listings.
func WithRecordLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recordLimit = n
		}
	}
}

func WithShareSalt(salt string) Option {
	return func(s *Service) { s.shareSalt = salt }
}

// WithTokens configures owner token issuance.
func WithTokens(secret string, ttl time.Duration) Option {
	return func(s *Service) {
		s.tokenSecret = secret
		s.tokenTTL = ttl
	}
}

// WithAdminEmails grants the admin role to owners registering with one of
// these addresses.
func WithAdminEmails(emails ...string) Option {
	return func(s *Service) {
		for _, e := range emails {
			if e = normalizeEmail(e); e != "" {
				s.adminEmails[e] = true
			}
		}
	}
}

func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		src:         draw.DefaultSource(),
		now:         time.Now,
		recordLimit: models.DefaultRecordLimit,
		tokenTTL:    30 * 24 * time.Hour,
		adminEmails: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ownedConfiguration loads a configuration on behalf of ownerID. Someone
// else's configuration is reported as not found.
func (s *Service) ownedConfiguration(ctx context.Context, ownerID, id string) (models.DrawConfiguration, error) {
	cfg, err := s.store.GetConfiguration(ctx, id)
	if err != nil {
		return models.DrawConfiguration{}, err
	}
	if cfg.OwnerID != ownerID {
		return models.DrawConfiguration{}, models.ErrNotFound
	}
	return cfg, nil
}

// clampLimit maps a requested page size into [1, recordLimit]; zero or
// negative means the default.
func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		limit = models.DefaultRecordLimit
	}
	return min(limit, s.recordLimit)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
