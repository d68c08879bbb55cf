// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
)

// InsertRecord validates rec against a read of the configuration, then
// writes it with a single INSERT ... SELECT that re-checks the configuration
// row, the item and the range. On PostgreSQL the configuration row is read
// FOR SHARE, so a concurrent delete waits for this transaction and then
// cascades to the record. A configuration deleted between the two
// statements yields ErrNotFound.
func (s *Store) InsertRecord(ctx context.Context, rec models.DrawRecord) error {
	var names any
	if rec.Names != nil {
		b, err := json.Marshal(rec.Names)
		if err != nil {
			return fmt.Errorf("encode names: %w", err)
		}
		names = string(b)
	}
	var number any
	if rec.Number != nil {
		number = int64(*rec.Number)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if s.dialect == Postgres {
			var id string
			err := tx.QueryRowContext(ctx, `SELECT id FROM draw_config WHERE id = $1 FOR SHARE`, rec.ConfigID).Scan(&id)
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("lock configuration: %w", err)
			}
		}
		cfg, err := s.getConfiguration(ctx, tx, "c.id = $1", rec.ConfigID)
		if err != nil {
			return err
		}
		if err := cfg.Admits(rec); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO draw_record (id, config_id, participant_name, item_id, item_name,
				drawn_number, names, created_at)
			SELECT CAST($1 AS TEXT), c.id, CAST($3 AS TEXT), CAST($4 AS TEXT), CAST($5 AS TEXT),
				CAST($6 AS BIGINT), CAST($7 AS TEXT), CAST($8 AS BIGINT)
			FROM draw_config c
			WHERE c.id = $2
				AND (CAST($4 AS TEXT) IS NULL OR EXISTS (
					SELECT 1 FROM draw_item i WHERE i.id = $4 AND i.config_id = c.id))
				AND (CAST($6 AS BIGINT) IS NULL OR (c.range_min <= $6 AND c.range_max >= $6))
		`), rec.ID, rec.ConfigID, rec.ParticipantName, rec.ItemID, rec.ItemName,
			number, names, toMillis(rec.CreatedAt))
		if isUniqueViolation(err) {
			return fmt.Errorf("record %s: %w", rec.ID, storage.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("configuration %s: %w", rec.ConfigID, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if err := s.configExists(ctx, tx, rec.ConfigID); err != nil {
				return err
			}
			return models.ErrInvalidReference
		}
		return nil
	})
}

func (s *Store) ListRecords(ctx context.Context, configID string, limit int) ([]models.DrawRecord, error) {
	if limit <= 0 {
		limit = models.DefaultRecordLimit
	}

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, config_id, participant_name, item_id, item_name, drawn_number, names, created_at
		FROM draw_record
		WHERE config_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`), configID, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []models.DrawRecord{}
	for rows.Next() {
		var rec models.DrawRecord
		var itemID, itemName, names sql.NullString
		var number sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.ConfigID, &rec.ParticipantName, &itemID, &itemName,
			&number, &names, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		if itemID.Valid {
			rec.ItemID = &itemID.String
		}
		if itemName.Valid {
			rec.ItemName = &itemName.String
		}
		if number.Valid {
			n := int(number.Int64)
			rec.Number = &n
		}
		if names.Valid {
			if err := json.Unmarshal([]byte(names.String), &rec.Names); err != nil {
				return nil, fmt.Errorf("decode names of record %s: %w", rec.ID, err)
			}
		}
		rec.CreatedAt = fromMillis(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
