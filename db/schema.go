// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// The same statements run on PostgreSQL and SQLite: timestamps are Unix
// milliseconds and list names are a JSON array in a TEXT column.
var schema = []string{
	// Owners
	`CREATE TABLE IF NOT EXISTS owner (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL
)`,

	// Draw configurations
	`CREATE TABLE IF NOT EXISTS draw_config (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES owner(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    mode TEXT NOT NULL CHECK (mode IN ('wheel', 'box', 'number', 'list')),
    uniform BOOLEAN NOT NULL DEFAULT FALSE,
    show_odds BOOLEAN NOT NULL DEFAULT FALSE,
    share_code TEXT NOT NULL UNIQUE,
    range_min BIGINT,
    range_max BIGINT,
    names TEXT,
    version BIGINT NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_draw_config_owner ON draw_config(owner_id, created_at)`,

	// Items of wheel and box configurations
	`CREATE TABLE IF NOT EXISTS draw_item (
    id TEXT PRIMARY KEY,
    config_id TEXT NOT NULL REFERENCES draw_config(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    weight INTEGER NOT NULL CHECK (weight >= 0),
    image_url TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_draw_item_config ON draw_item(config_id, position)`,

	// Draw records. item_id has no foreign key: records outlive the items
	// they name.
	`CREATE TABLE IF NOT EXISTS draw_record (
    id TEXT PRIMARY KEY,
    config_id TEXT NOT NULL REFERENCES draw_config(id) ON DELETE CASCADE,
    participant_name TEXT NOT NULL,
    item_id TEXT,
    item_name TEXT,
    drawn_number BIGINT,
    names TEXT,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_draw_record_config ON draw_record(config_id, created_at, id)`,
}
