// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/quickly-draw/models"
)

// ErrDuplicate is returned when an insert collides with an existing id or
// share code.
var ErrDuplicate = errors.New("already exists")

// Store persists owners, draw configurations and the draw record ledger.
//
// Lookups that find nothing return models.ErrNotFound. Implementations must
// be safe for concurrent use.
type Store interface {
	CreateOwner(ctx context.Context, owner models.Owner) error
	GetOwner(ctx context.Context, id string) (models.Owner, error)

	// CreateConfiguration stores cfg together with its items.
	CreateConfiguration(ctx context.Context, cfg models.DrawConfiguration) error
	GetConfiguration(ctx context.Context, id string) (models.DrawConfiguration, error)
	GetConfigurationByShareCode(ctx context.Context, code string) (models.DrawConfiguration, error)
	// ListConfigurations returns the owner's configurations, newest first.
	ListConfigurations(ctx context.Context, ownerID string) ([]models.ConfigSummary, error)
	// UpdateConfiguration replaces the mutable fields and the item set of
	// cfg. Items whose id is absent from cfg.Items are removed. Mode, owner
	// and share code are never written. The write only happens if the
	// stored version still equals cfg.Version, else models.ErrConflict;
	// a successful write increments the stored version.
	UpdateConfiguration(ctx context.Context, cfg models.DrawConfiguration) error
	// AddItem appends item after the current items and returns it with its
	// assigned position. Concurrent adds never drop each other.
	AddItem(ctx context.Context, configID string, item models.Item, updatedAt time.Time) (models.Item, error)
	// RemoveItem deletes one item and closes the gap in positions. Removing
	// the last item is a *models.ValidationError.
	RemoveItem(ctx context.Context, configID, itemID string, updatedAt time.Time) error
	// DeleteConfiguration removes the configuration, its items and its
	// records in one transaction.
	DeleteConfiguration(ctx context.Context, id string) error

	// InsertRecord checks that the configuration still exists and that the
	// record's outcome still refers to its current items, range or names,
	// then writes the record. The check and the write are atomic.
	InsertRecord(ctx context.Context, rec models.DrawRecord) error
	// ListRecords returns up to limit records, newest first.
	ListRecords(ctx context.Context, configID string, limit int) ([]models.DrawRecord, error)

	Close() error
}
