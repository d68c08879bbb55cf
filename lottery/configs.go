// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lottery

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-draw/auth"
	"github.com/danielhkuo/quickly-draw/models"
)

// RegisterOwner creates an owner and returns it with a bearer token.
func (s *Service) RegisterOwner(ctx context.Context, displayName, email string) (models.Owner, string, error) {
	displayName = models.NormalizeName(displayName)
	if displayName == "" {
		return models.Owner{}, "", models.NewValidationError("display_name", "display name is required")
	}
	if utf8.RuneCountInString(displayName) > models.MaxConfigNameLength {
		return models.Owner{}, "", models.NewValidationError("display_name",
			fmt.Sprintf("display name must be at most %d characters", models.MaxConfigNameLength))
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return models.Owner{}, "", err
	}
	owner := models.Owner{
		ID:          id,
		DisplayName: displayName,
		Email:       normalizeEmail(email),
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateOwner(ctx, owner); err != nil {
		return models.Owner{}, "", fmt.Errorf("create owner: %w", err)
	}

	role := models.RoleOwner
	if owner.Email != "" && s.adminEmails[owner.Email] {
		role = models.RoleAdmin
	}
	token, err := auth.IssueOwnerToken(owner.ID, role, s.tokenSecret, s.tokenTTL, s.now())
	if err != nil {
		return models.Owner{}, "", err
	}

	slog.Info("owner registered", "owner_id", owner.ID, "role", role)
	return owner, token, nil
}

// CreateConfiguration validates req and stores a new configuration with a
// fresh share code.
func (s *Service) CreateConfiguration(ctx context.Context, ownerID string, req models.CreateConfigRequest) (models.DrawConfiguration, error) {
	if _, err := s.store.GetOwner(ctx, ownerID); err != nil {
		return models.DrawConfiguration{}, err
	}

	cfg := models.DrawConfiguration{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Mode:        req.Mode,
		Uniform:     req.Uniform,
		ShowOdds:    req.ShowOdds,
		Names:       slices.Clone(req.Names),
	}
	if req.Min != nil && req.Max != nil {
		cfg.Range = &models.NumberRange{Min: *req.Min, Max: *req.Max}
	}
	for _, in := range req.Items {
		item, err := newItem(in)
		if err != nil {
			return models.DrawConfiguration{}, err
		}
		cfg.Items = append(cfg.Items, item)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return models.DrawConfiguration{}, err
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return models.DrawConfiguration{}, err
	}
	cfg.ID = id
	cfg.ShareCode = auth.GenerateShareCode(id, s.shareSalt)
	cfg.CreatedAt = s.now()
	cfg.UpdatedAt = cfg.CreatedAt

	if err := s.store.CreateConfiguration(ctx, cfg); err != nil {
		return models.DrawConfiguration{}, fmt.Errorf("create configuration: %w", err)
	}

	slog.Info("configuration created", "config_id", cfg.ID, "owner_id", ownerID, "mode", cfg.Mode)
	return cfg, nil
}

func newItem(in models.ItemInput) (models.Item, error) {
	id, err := auth.GenerateID(8)
	if err != nil {
		return models.Item{}, err
	}
	return models.Item{ID: id, Name: in.Name, Weight: in.Weight, ImageURL: in.ImageURL}, nil
}

// GetConfiguration returns an owned configuration with its most recent
// records.
func (s *Service) GetConfiguration(ctx context.Context, ownerID, id string) (models.DrawConfiguration, []models.DrawRecord, error) {
	cfg, err := s.ownedConfiguration(ctx, ownerID, id)
	if err != nil {
		return models.DrawConfiguration{}, nil, err
	}
	records, err := s.store.ListRecords(ctx, id, min(models.DetailRecordLimit, s.recordLimit))
	if err != nil {
		return models.DrawConfiguration{}, nil, fmt.Errorf("list records: %w", err)
	}
	return cfg, records, nil
}

// ListConfigurations returns the owner's configurations, newest first.
func (s *Service) ListConfigurations(ctx context.Context, ownerID string) ([]models.ConfigSummary, error) {
	list, err := s.store.ListConfigurations(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	return list, nil
}

// UpdateConfiguration applies req to an owned configuration. Items sent
// with a known id keep it, new ones get fresh ids and items left out are
// removed. Past records are untouched.
func (s *Service) UpdateConfiguration(ctx context.Context, ownerID, id string, req models.UpdateConfigRequest) (models.DrawConfiguration, error) {
	cfg, err := s.ownedConfiguration(ctx, ownerID, id)
	if err != nil {
		return models.DrawConfiguration{}, err
	}

	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.Description != nil {
		cfg.Description = *req.Description
	}
	if req.Uniform != nil {
		cfg.Uniform = *req.Uniform
	}
	if req.ShowOdds != nil {
		cfg.ShowOdds = *req.ShowOdds
	}

	if req.Items != nil && cfg.Mode.HasItems() {
		items := make([]models.Item, 0, len(req.Items))
		for _, in := range req.Items {
			if current, ok := cfg.FindItem(in.ID); ok && in.ID != "" && !containsItem(items, in.ID) {
				current.Name, current.Weight, current.ImageURL = in.Name, in.Weight, in.ImageURL
				items = append(items, current)
				continue
			}
			item, err := newItem(in)
			if err != nil {
				return models.DrawConfiguration{}, err
			}
			items = append(items, item)
		}
		cfg.Items = items
	}

	if cfg.Mode == models.ModeNumber && (req.Min != nil || req.Max != nil) {
		r := models.NumberRange{}
		if cfg.Range != nil {
			r = *cfg.Range
		}
		if req.Min != nil {
			r.Min = *req.Min
		}
		if req.Max != nil {
			r.Max = *req.Max
		}
		cfg.Range = &r
	}

	if req.Names != nil && cfg.Mode == models.ModeList {
		cfg.Names = slices.Clone(req.Names)
	}

	return s.saveConfiguration(ctx, cfg)
}

func containsItem(items []models.Item, id string) bool {
	return slices.ContainsFunc(items, func(item models.Item) bool { return item.ID == id })
}

// AddItem appends an item to an owned wheel or box configuration. The store
// assigns the position, so concurrent adds all land.
func (s *Service) AddItem(ctx context.Context, ownerID, configID string, in models.ItemInput) (models.Item, error) {
	cfg, err := s.ownedConfiguration(ctx, ownerID, configID)
	if err != nil {
		return models.Item{}, err
	}
	if !cfg.Mode.HasItems() {
		return models.Item{}, models.NewValidationError("mode", fmt.Sprintf("%s configurations have no items", cfg.Mode))
	}

	item, err := newItem(in)
	if err != nil {
		return models.Item{}, err
	}
	cfg.Items = append(cfg.Items, item)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return models.Item{}, err
	}
	item = cfg.Items[len(cfg.Items)-1]

	added, err := s.store.AddItem(ctx, configID, item, s.now())
	if err != nil {
		return models.Item{}, fmt.Errorf("add item: %w", err)
	}
	slog.Info("item added", "config_id", configID, "item_id", added.ID)
	return added, nil
}

// RemoveItem deletes one item. Records that drew it keep their snapshot.
func (s *Service) RemoveItem(ctx context.Context, ownerID, configID, itemID string) error {
	if _, err := s.ownedConfiguration(ctx, ownerID, configID); err != nil {
		return err
	}
	if err := s.store.RemoveItem(ctx, configID, itemID, s.now()); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	slog.Info("item removed", "config_id", configID, "item_id", itemID)
	return nil
}

// saveConfiguration revalidates cfg and persists it. The write is rejected
// with models.ErrConflict if another edit landed since cfg was read.
func (s *Service) saveConfiguration(ctx context.Context, cfg models.DrawConfiguration) (models.DrawConfiguration, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return models.DrawConfiguration{}, err
	}
	cfg.UpdatedAt = s.now()

	if err := s.store.UpdateConfiguration(ctx, cfg); err != nil {
		return models.DrawConfiguration{}, fmt.Errorf("update configuration: %w", err)
	}
	cfg.Version++

	slog.Info("configuration updated", "config_id", cfg.ID, "items", len(cfg.Items))
	return cfg, nil
}

// DeleteConfiguration removes a configuration with its items and records.
// Only the owner or an admin may delete; anyone else sees ErrNotFound.
func (s *Service) DeleteConfiguration(ctx context.Context, caller models.Caller, id string) error {
	cfg, err := s.store.GetConfiguration(ctx, id)
	if err != nil {
		return err
	}
	if cfg.OwnerID != caller.OwnerID && !caller.Admin {
		return models.ErrNotFound
	}

	if err := s.store.DeleteConfiguration(ctx, id); err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}

	slog.Info("configuration deleted", "config_id", id, "by", caller.OwnerID, "admin", caller.Admin)
	return nil
}
