// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are resolved in three layers, later layers winning:

 1. a .env file (path from ENV_FILE, default ".env"; missing is fine),
    which never overrides variables already in the environment
 2. environment variables, parsed with caarlos0/env
 3. CLI flags

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite file path
  - DatabaseType: sqlite (default), postgres or memory
  - TokenSecret: HS256 secret for owner tokens (required)
  - ShareCodeSalt: Secret for share code generation (required)
  - AdminEmails: Owners registering with these emails get the admin role
  - TokenTTL: Owner token lifetime (default: 720h)
  - PublicBaseURL: Prefix for share links (default: http://localhost:3318)
  - RecordPageLimit: Upper bound for record listings (default: 100)
  - ReadTimeout, WriteTimeout: http.Server timeouts (default: 10s)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)

# CLI Flags and Environment Variables

	-p              PORT
	-d              DATABASE_URL
	-t              DATABASE_TYPE
	-base-url       PUBLIC_BASE_URL
	-token-secret   TOKEN_SECRET
	-share-salt     SHARE_CODE_SALT
	-admin-emails   ADMIN_EMAILS (comma-separated)
	-token-ttl      TOKEN_TTL
	-record-limit   RECORD_PAGE_LIMIT
	-log-level      LOG_LEVEL
	-log-format     LOG_FORMAT
	                READ_TIMEOUT, WRITE_TIMEOUT (env only)

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for sqlite or postgres
  - TOKEN_SECRET or SHARE_CODE_SALT is missing
  - the database type, log level or log format is unknown
  - the token TTL or record limit is not positive
*/
package cliparse
