// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package memory is a process-local storage.Store. Data lives only as long
// as the process.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
)

type Store struct {
	mu      sync.RWMutex
	owners  map[string]models.Owner
	configs map[string]models.DrawConfiguration
	byCode  map[string]string // share code -> config id
	records map[string][]models.DrawRecord
}

func New() *Store {
	return &Store{
		owners:  make(map[string]models.Owner),
		configs: make(map[string]models.DrawConfiguration),
		byCode:  make(map[string]string),
		records: make(map[string][]models.DrawRecord),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateOwner(ctx context.Context, owner models.Owner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owners[owner.ID]; ok {
		return fmt.Errorf("owner %s: %w", owner.ID, storage.ErrDuplicate)
	}
	s.owners[owner.ID] = owner
	return nil
}

func (s *Store) GetOwner(ctx context.Context, id string) (models.Owner, error) {
	if err := ctx.Err(); err != nil {
		return models.Owner{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.owners[id]
	if !ok {
		return models.Owner{}, models.ErrNotFound
	}
	return owner, nil
}

func (s *Store) CreateConfiguration(ctx context.Context, cfg models.DrawConfiguration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owners[cfg.OwnerID]; !ok {
		return fmt.Errorf("owner %s: %w", cfg.OwnerID, models.ErrNotFound)
	}
	if _, ok := s.configs[cfg.ID]; ok {
		return fmt.Errorf("configuration %s: %w", cfg.ID, storage.ErrDuplicate)
	}
	if _, ok := s.byCode[cfg.ShareCode]; ok {
		return fmt.Errorf("share code %s: %w", cfg.ShareCode, storage.ErrDuplicate)
	}
	s.configs[cfg.ID] = clone(cfg)
	s.byCode[cfg.ShareCode] = cfg.ID
	return nil
}

func (s *Store) GetConfiguration(ctx context.Context, id string) (models.DrawConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return models.DrawConfiguration{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[id]
	if !ok {
		return models.DrawConfiguration{}, models.ErrNotFound
	}
	return clone(cfg), nil
}

func (s *Store) GetConfigurationByShareCode(ctx context.Context, code string) (models.DrawConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return models.DrawConfiguration{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[code]
	if !ok {
		return models.DrawConfiguration{}, models.ErrNotFound
	}
	return clone(s.configs[id]), nil
}

func (s *Store) ListConfigurations(ctx context.Context, ownerID string) ([]models.ConfigSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := []models.ConfigSummary{}
	for id, cfg := range s.configs {
		if cfg.OwnerID != ownerID {
			continue
		}
		summaries = append(summaries, models.ConfigSummary{
			DrawConfiguration: clone(cfg),
			RecordCount:       len(s.records[id]),
		})
	}
	slices.SortFunc(summaries, func(a, b models.ConfigSummary) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return summaries, nil
}

func (s *Store) UpdateConfiguration(ctx context.Context, cfg models.DrawConfiguration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.configs[cfg.ID]
	if !ok {
		return models.ErrNotFound
	}
	if current.Version != cfg.Version {
		return models.ErrConflict
	}

	next := clone(cfg)
	next.OwnerID = current.OwnerID
	next.Mode = current.Mode
	next.ShareCode = current.ShareCode
	next.CreatedAt = current.CreatedAt
	next.Version = current.Version + 1
	s.configs[cfg.ID] = next
	return nil
}

func (s *Store) AddItem(ctx context.Context, configID string, item models.Item, updatedAt time.Time) (models.Item, error) {
	if err := ctx.Err(); err != nil {
		return models.Item{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[configID]
	if !ok {
		return models.Item{}, models.ErrNotFound
	}
	if _, ok := cfg.FindItem(item.ID); ok {
		return models.Item{}, fmt.Errorf("item %s: %w", item.ID, storage.ErrDuplicate)
	}

	item.Position = len(cfg.Items)
	cfg = clone(cfg)
	cfg.Items = append(cfg.Items, item)
	cfg.Version++
	cfg.UpdatedAt = updatedAt
	s.configs[configID] = cfg
	return item, nil
}

func (s *Store) RemoveItem(ctx context.Context, configID, itemID string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[configID]
	if !ok {
		return models.ErrNotFound
	}
	idx := slices.IndexFunc(cfg.Items, func(item models.Item) bool { return item.ID == itemID })
	if idx < 0 {
		return models.ErrNotFound
	}
	if len(cfg.Items) == 1 {
		return models.NewValidationError("items", "at least one item is required")
	}

	cfg = clone(cfg)
	cfg.Items = slices.Delete(cfg.Items, idx, idx+1)
	for i := idx; i < len(cfg.Items); i++ {
		cfg.Items[i].Position = i
	}
	cfg.Version++
	cfg.UpdatedAt = updatedAt
	s.configs[configID] = cfg
	return nil
}

func (s *Store) DeleteConfiguration(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[id]
	if !ok {
		return models.ErrNotFound
	}
	delete(s.configs, id)
	delete(s.byCode, cfg.ShareCode)
	delete(s.records, id)
	return nil
}

func (s *Store) InsertRecord(ctx context.Context, rec models.DrawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[rec.ConfigID]
	if !ok {
		return models.ErrNotFound
	}
	if err := cfg.Admits(rec); err != nil {
		return err
	}

	rec.Names = slices.Clone(rec.Names)
	s.records[rec.ConfigID] = append(s.records[rec.ConfigID], rec)
	return nil
}

func (s *Store) ListRecords(ctx context.Context, configID string, limit int) ([]models.DrawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := slices.Clone(s.records[configID])
	slices.SortFunc(records, func(a, b models.DrawRecord) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		records = []models.DrawRecord{}
	}
	return records, nil
}

// clone copies the slices of cfg so callers cannot mutate stored state.
func clone(cfg models.DrawConfiguration) models.DrawConfiguration {
	cfg.Items = slices.Clone(cfg.Items)
	cfg.Names = slices.Clone(cfg.Names)
	if cfg.Range != nil {
		r := *cfg.Range
		cfg.Range = &r
	}
	return cfg
}

var _ storage.Store = (*Store)(nil)
