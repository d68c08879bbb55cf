// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
	"github.com/danielhkuo/quickly-draw/storage/storetest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), SQLite, filepath.Join(t.TempDir(), "draw.db"))
	require.NoError(t, err)
	return store
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return openTestStore(t)
	})
}

func TestOpenRejectsUnknownType(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever")
	require.Error(t, err)

	_, err = Open(context.Background(), SQLite, "  ")
	require.Error(t, err)
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()

	require.NoError(t, CreateSchema(context.Background(), store.db))
	require.NoError(t, store.Ping(context.Background()))
}

func TestPlaceholderRewrite(t *testing.T) {
	tests := []struct {
		dialect string
		query   string
		want    string
	}{
		{SQLite, "SELECT * FROM t WHERE a = $1 AND b = $12", "SELECT * FROM t WHERE a = ?1 AND b = ?12"},
		{Postgres, "SELECT * FROM t WHERE a = $1", "SELECT * FROM t WHERE a = $1"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			s := &Store{dialect: tt.dialect}
			if got := s.q(tt.query); got != tt.want {
				t.Errorf("q() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMillisRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 8, 30, 15, 123456789, time.FixedZone("x", 3600))
	got := fromMillis(toMillis(at))
	require.Equal(t, time.UTC, got.Location())
	require.True(t, at.Truncate(time.Millisecond).Equal(got))
}

func TestDuplicateOwner(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()
	ctx := context.Background()

	owner := models.Owner{ID: "o1", DisplayName: "Dana", CreatedAt: time.Now()}
	require.NoError(t, store.CreateOwner(ctx, owner))
	err := store.CreateOwner(ctx, owner)
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("CreateOwner() duplicate error = %v, want storage.ErrDuplicate", err)
	}
}

func TestConfigurationRequiresOwner(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()

	err := store.CreateConfiguration(context.Background(), models.DrawConfiguration{
		ID: "c1", OwnerID: "ghost", Name: "x", Mode: models.ModeNumber, ShareCode: "s",
		Range: &models.NumberRange{Min: 1, Max: 2},
	})
	require.ErrorIs(t, err, models.ErrNotFound, "foreign keys must be enforced")
}

func TestForeignKeyViolationDetected(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()

	_, err := store.db.ExecContext(context.Background(), store.q(`
		INSERT INTO draw_record (id, config_id, participant_name, created_at)
		VALUES ($1, $2, $3, $4)
	`), "r1", "gone", "Sam", int64(0))
	require.Error(t, err)
	require.True(t, isForeignKeyViolation(err), "got %v", err)
	require.False(t, isUniqueViolation(err))
	require.False(t, isForeignKeyViolation(nil))
}

func TestVersionConflictAgainstDeletedConfiguration(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()
	ctx := context.Background()

	cfg := models.DrawConfiguration{ID: "c1", Name: "x", Mode: models.ModeNumber, ShareCode: "s",
		Range: &models.NumberRange{Min: 1, Max: 2}, Version: 5}
	err := store.UpdateConfiguration(ctx, cfg)
	require.ErrorIs(t, err, models.ErrNotFound)
}
