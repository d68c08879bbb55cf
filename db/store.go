// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
)

// Supported database types
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Store is the database/sql implementation of storage.Store.
type Store struct {
	db      *sql.DB
	dialect string
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open connects to the database, verifies the connection and creates the
// schema. dbType is Postgres or SQLite; for SQLite url is a file path.
func Open(ctx context.Context, dbType, url string) (*Store, error) {
	var driver, dsn string
	switch dbType {
	case Postgres:
		driver, dsn = "postgres", url
	case SQLite:
		if strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		driver = "sqlite"
		dsn = filepath.Clean(url) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbType, err)
	}
	if dbType == SQLite {
		// One writer at a time; readers wait on the same connection.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbType, err)
	}
	if err := CreateSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Store{db: conn, dialect: dbType}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// q rewrites $N placeholders to ?N for SQLite. Queries in this package
// never contain a literal '$'.
func (s *Store) q(query string) string {
	if s.dialect != SQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" // foreign_key_violation
	}
	return false
}

func (s *Store) CreateOwner(ctx context.Context, owner models.Owner) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO owner (id, display_name, email, created_at)
		VALUES ($1, $2, $3, $4)
	`), owner.ID, owner.DisplayName, owner.Email, toMillis(owner.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("owner %s: %w", owner.ID, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

func (s *Store) GetOwner(ctx context.Context, id string) (models.Owner, error) {
	var owner models.Owner
	var createdAt int64
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, display_name, email, created_at FROM owner WHERE id = $1
	`), id).Scan(&owner.ID, &owner.DisplayName, &owner.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Owner{}, models.ErrNotFound
	}
	if err != nil {
		return models.Owner{}, fmt.Errorf("query owner: %w", err)
	}
	owner.CreatedAt = fromMillis(createdAt)
	return owner, nil
}

var _ storage.Store = (*Store)(nil)
