// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Draw API server.

Quickly Draw lets an owner set up a random draw (a weighted wheel, a blind
box, a number range or a list of names) and share it by code. Participants
open the code, draw, and every draw lands in an append-only ledger the
owner can read.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	TOKEN_SECRET=... SHARE_CODE_SALT=... DATABASE_URL=draw.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - TOKEN_SECRET (-token-secret): HS256 secret for owner tokens
  - SHARE_CODE_SALT (-share-salt): Secret for share code generation
  - DATABASE_URL (-d): PostgreSQL connection string or SQLite file path,
    unless DATABASE_TYPE is memory

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default), postgres or memory
  - ADMIN_EMAILS (-admin-emails): Owners who may delete any configuration
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

See package cliparse for the full list.

# Architecture

  - draw: Selection primitives and the mode dispatcher
  - lottery: Configuration management, share codes and the draw ledger
  - storage: Store interface, with memory and db implementations
  - handlers: HTTP request handlers (owners, configs, public draws)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer auth
  - models: Domain, request and response types with validation
  - auth: IDs, share codes and owner tokens
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
