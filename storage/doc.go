// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storage defines the persistence boundary of the draw service.
//
// Two implementations exist: package db (PostgreSQL or SQLite through
// database/sql) and package storage/memory (process-local, for offline use
// and tests).
package storage
