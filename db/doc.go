// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the database/sql implementation of storage.Store, for
PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).

# Opening

Open connects, pings and creates the schema:

	store, err := db.Open(ctx, db.SQLite, "draw.db")
	store, err := db.Open(ctx, db.Postgres, "postgres://...")

For SQLite the URL is a file path. Foreign keys, a busy timeout and WAL
journaling are enabled through DSN pragmas, and the pool is held to one
connection so writers never race each other.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes. One set of statements serves both databases: timestamps
are stored as BIGINT Unix milliseconds, and range bounds and name lists as
JSON text. Queries are written with $N placeholders and rewritten to ? for
SQLite.

# Tables

  - owner: Registered owners
  - draw_config: One draw configuration per row, share_code unique
  - draw_item: Items of wheel and box configurations, ordered by position
  - draw_record: The append-only ledger

# Relationships

	owner 1──* draw_config
	draw_config 1──* draw_item
	draw_config 1──* draw_record

Foreign keys use ON DELETE CASCADE. draw_record.item_id deliberately has no
foreign key: a record keeps its item id and name after the item is removed.

# Record Inserts

InsertRecord checks the record against the configuration and inserts it in
one transaction. The INSERT itself is conditional on the configuration (and
for item and number records, the item or range) still existing, so a draw
racing a delete or an edit is rejected with models.ErrNotFound or
models.ErrInvalidReference instead of landing. On PostgreSQL the
configuration row is read FOR SHARE first.

# Versions

draw_config.version is incremented by every write. UpdateConfiguration only
applies when the stored version matches the one read and otherwise returns
models.ErrConflict. AddItem and RemoveItem bump the version as their first
statement, which serialises them on the configuration row.
*/
package db
