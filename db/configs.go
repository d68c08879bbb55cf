// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
)

const configColumns = `c.id, c.owner_id, c.name, c.description, c.mode, c.uniform, c.show_odds,
	c.share_code, c.range_min, c.range_max, c.names, c.version, c.created_at, c.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanConfig reads configColumns (plus any extra destinations) from row.
func scanConfig(row rowScanner, extra ...any) (models.DrawConfiguration, error) {
	var cfg models.DrawConfiguration
	var mode string
	var rangeMin, rangeMax sql.NullInt64
	var names sql.NullString
	var createdAt, updatedAt int64

	dest := []any{
		&cfg.ID, &cfg.OwnerID, &cfg.Name, &cfg.Description, &mode, &cfg.Uniform, &cfg.ShowOdds,
		&cfg.ShareCode, &rangeMin, &rangeMax, &names, &cfg.Version, &createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.DrawConfiguration{}, err
	}

	cfg.Mode = models.Mode(mode)
	if rangeMin.Valid && rangeMax.Valid {
		cfg.Range = &models.NumberRange{Min: int(rangeMin.Int64), Max: int(rangeMax.Int64)}
	}
	if names.Valid {
		if err := json.Unmarshal([]byte(names.String), &cfg.Names); err != nil {
			return models.DrawConfiguration{}, fmt.Errorf("decode names of %s: %w", cfg.ID, err)
		}
	}
	cfg.CreatedAt = fromMillis(createdAt)
	cfg.UpdatedAt = fromMillis(updatedAt)
	return cfg, nil
}

// payloadArgs returns the range and names column values for cfg.
func payloadArgs(cfg models.DrawConfiguration) (rangeMin, rangeMax, names any, err error) {
	if cfg.Range != nil {
		rangeMin, rangeMax = int64(cfg.Range.Min), int64(cfg.Range.Max)
	}
	if cfg.Names != nil {
		b, err := json.Marshal(cfg.Names)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encode names: %w", err)
		}
		names = string(b)
	}
	return rangeMin, rangeMax, names, nil
}

func (s *Store) CreateConfiguration(ctx context.Context, cfg models.DrawConfiguration) error {
	rangeMin, rangeMax, names, err := payloadArgs(cfg)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO draw_config (id, owner_id, name, description, mode, uniform, show_odds,
				share_code, range_min, range_max, names, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`), cfg.ID, cfg.OwnerID, cfg.Name, cfg.Description, string(cfg.Mode), cfg.Uniform, cfg.ShowOdds,
			cfg.ShareCode, rangeMin, rangeMax, names, cfg.Version, toMillis(cfg.CreatedAt), toMillis(cfg.UpdatedAt))
		if isUniqueViolation(err) {
			return fmt.Errorf("configuration %s: %w", cfg.ID, storage.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("owner %s: %w", cfg.OwnerID, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("insert configuration: %w", err)
		}

		for _, item := range cfg.Items {
			if err := s.insertItem(ctx, tx, cfg.ID, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) insertItem(ctx context.Context, q querier, configID string, item models.Item) error {
	_, err := q.ExecContext(ctx, s.q(`
		INSERT INTO draw_item (id, config_id, name, weight, image_url, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`), item.ID, configID, item.Name, item.Weight, item.ImageURL, item.Position)
	if isUniqueViolation(err) {
		return fmt.Errorf("item %s: %w", item.ID, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (s *Store) GetConfiguration(ctx context.Context, id string) (models.DrawConfiguration, error) {
	return s.getConfiguration(ctx, s.db, "c.id = $1", id)
}

func (s *Store) GetConfigurationByShareCode(ctx context.Context, code string) (models.DrawConfiguration, error) {
	return s.getConfiguration(ctx, s.db, "c.share_code = $1", code)
}

func (s *Store) getConfiguration(ctx context.Context, q querier, where string, arg string) (models.DrawConfiguration, error) {
	row := q.QueryRowContext(ctx, s.q(`SELECT `+configColumns+` FROM draw_config c WHERE `+where), arg)
	cfg, err := scanConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DrawConfiguration{}, models.ErrNotFound
	}
	if err != nil {
		return models.DrawConfiguration{}, fmt.Errorf("query configuration: %w", err)
	}

	items, err := s.listItems(ctx, q, "i.config_id = $1", cfg.ID)
	if err != nil {
		return models.DrawConfiguration{}, err
	}
	cfg.Items = items[cfg.ID]
	return cfg, nil
}

// listItems returns items grouped by configuration id, in position order.
func (s *Store) listItems(ctx context.Context, q querier, where string, arg string) (map[string][]models.Item, error) {
	rows, err := q.QueryContext(ctx, s.q(`
		SELECT i.config_id, i.id, i.name, i.weight, i.image_url, i.position
		FROM draw_item i JOIN draw_config c ON c.id = i.config_id
		WHERE `+where+`
		ORDER BY i.config_id, i.position
	`), arg)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]models.Item)
	for rows.Next() {
		var configID string
		var item models.Item
		if err := rows.Scan(&configID, &item.ID, &item.Name, &item.Weight, &item.ImageURL, &item.Position); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items[configID] = append(items[configID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s *Store) ListConfigurations(ctx context.Context, ownerID string) ([]models.ConfigSummary, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT `+configColumns+`,
			(SELECT COUNT(*) FROM draw_record r WHERE r.config_id = c.id)
		FROM draw_config c
		WHERE c.owner_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("query configurations: %w", err)
	}
	defer rows.Close()

	summaries := []models.ConfigSummary{}
	for rows.Next() {
		var count int
		cfg, err := scanConfig(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("scan configuration: %w", err)
		}
		summaries = append(summaries, models.ConfigSummary{DrawConfiguration: cfg, RecordCount: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configurations: %w", err)
	}
	rows.Close()

	items, err := s.listItems(ctx, s.db, "c.owner_id = $1", ownerID)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Items = items[summaries[i].ID]
	}
	return summaries, nil
}

func (s *Store) UpdateConfiguration(ctx context.Context, cfg models.DrawConfiguration) error {
	rangeMin, rangeMax, names, err := payloadArgs(cfg)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.q(`
			UPDATE draw_config
			SET name = $2, description = $3, uniform = $4, show_odds = $5,
				range_min = $6, range_max = $7, names = $8, updated_at = $9,
				version = version + 1
			WHERE id = $1 AND version = $10
		`), cfg.ID, cfg.Name, cfg.Description, cfg.Uniform, cfg.ShowOdds,
			rangeMin, rangeMax, names, toMillis(cfg.UpdatedAt), cfg.Version)
		if err != nil {
			return fmt.Errorf("update configuration: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if err := s.configExists(ctx, tx, cfg.ID); err != nil {
				return err
			}
			return models.ErrConflict
		}

		existing, err := s.listItems(ctx, tx, "i.config_id = $1", cfg.ID)
		if err != nil {
			return err
		}
		keep := make(map[string]bool, len(cfg.Items))
		for _, item := range cfg.Items {
			keep[item.ID] = true
		}
		current := make(map[string]bool)
		for _, item := range existing[cfg.ID] {
			current[item.ID] = true
			if keep[item.ID] {
				continue
			}
			if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM draw_item WHERE id = $1`), item.ID); err != nil {
				return fmt.Errorf("delete item: %w", err)
			}
		}

		for _, item := range cfg.Items {
			if !current[item.ID] {
				if err := s.insertItem(ctx, tx, cfg.ID, item); err != nil {
					return err
				}
				continue
			}
			_, err := tx.ExecContext(ctx, s.q(`
				UPDATE draw_item SET name = $2, weight = $3, image_url = $4, position = $5
				WHERE id = $1
			`), item.ID, item.Name, item.Weight, item.ImageURL, item.Position)
			if err != nil {
				return fmt.Errorf("update item: %w", err)
			}
		}
		return nil
	})
}

// AddItem bumps the configuration version first, which on PostgreSQL holds
// the row lock until commit, so the position count below cannot race
// another add.
func (s *Store) AddItem(ctx context.Context, configID string, item models.Item, updatedAt time.Time) (models.Item, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.touchConfig(ctx, tx, configID, updatedAt); err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, s.q(`
			SELECT COUNT(*) FROM draw_item WHERE config_id = $1
		`), configID).Scan(&item.Position); err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		return s.insertItem(ctx, tx, configID, item)
	})
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (s *Store) RemoveItem(ctx context.Context, configID, itemID string, updatedAt time.Time) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.touchConfig(ctx, tx, configID, updatedAt); err != nil {
			return err
		}

		var position, count int
		err := tx.QueryRowContext(ctx, s.q(`
			SELECT position, (SELECT COUNT(*) FROM draw_item WHERE config_id = $2)
			FROM draw_item WHERE id = $1 AND config_id = $2
		`), itemID, configID).Scan(&position, &count)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("query item: %w", err)
		}
		if count <= 1 {
			return models.NewValidationError("items", "at least one item is required")
		}

		if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM draw_item WHERE id = $1`), itemID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if _, err := tx.ExecContext(ctx, s.q(`
			UPDATE draw_item SET position = position - 1
			WHERE config_id = $1 AND position > $2
		`), configID, position); err != nil {
			return fmt.Errorf("renumber items: %w", err)
		}
		return nil
	})
}

// touchConfig increments the version and sets updated_at, locking the row.
func (s *Store) touchConfig(ctx context.Context, tx *sql.Tx, id string, updatedAt time.Time) error {
	res, err := tx.ExecContext(ctx, s.q(`
		UPDATE draw_config SET version = version + 1, updated_at = $2 WHERE id = $1
	`), id, toMillis(updatedAt))
	if err != nil {
		return fmt.Errorf("update configuration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) configExists(ctx context.Context, q querier, id string) error {
	var exists int
	err := q.QueryRowContext(ctx, s.q(`SELECT 1 FROM draw_config WHERE id = $1`), id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query configuration: %w", err)
	}
	return nil
}

// DeleteConfiguration removes records and items explicitly so the cascade
// does not depend on foreign key enforcement being enabled.
func (s *Store) DeleteConfiguration(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM draw_record WHERE config_id = $1`,
			`DELETE FROM draw_item WHERE config_id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, s.q(stmt), id); err != nil {
				return fmt.Errorf("delete configuration %s: %w", id, err)
			}
		}

		res, err := tx.ExecContext(ctx, s.q(`DELETE FROM draw_config WHERE id = $1`), id)
		if err != nil {
			return fmt.Errorf("delete configuration %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
