package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// Secrets
	TokenSecret   string `env:"TOKEN_SECRET"`
	ShareCodeSalt string `env:"SHARE_CODE_SALT"`

	// Owners registering with one of these emails get the admin role
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3318"`
	RecordPageLimit int           `env:"RECORD_PAGE_LIMIT" envDefault:"100"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// ParseFlags loads .env (or ENV_FILE), parses the environment and then
// applies CLI flags, which take precedence.
func ParseFlags(args []string) (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// Existing environment variables win over the file; a missing file is fine
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("quickly-draw", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", cfg.PublicBaseURL, "Public base URL for share links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Owner token signing secret (prefer env)")
	fs.StringVar(&cfg.ShareCodeSalt, "share-salt", cfg.ShareCodeSalt, "Share code salt (prefer env)")

	fs.Func("admin-emails", "Comma-separated admin emails", func(v string) error {
		cfg.AdminEmails = strings.Split(v, ",")
		return nil
	})

	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "Owner token lifetime")
	fs.IntVar(&cfg.RecordPageLimit, "record-limit", cfg.RecordPageLimit, "Maximum records per page")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DatabaseType {
	case "sqlite", "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database type %q", c.DatabaseType)
	}

	// Secrets - MUST be provided
	if c.TokenSecret == "" {
		return errors.New("TOKEN_SECRET required")
	}
	if c.ShareCodeSalt == "" {
		return errors.New("SHARE_CODE_SALT required")
	}

	if c.TokenTTL <= 0 {
		return errors.New("token TTL must be positive")
	}
	if c.RecordPageLimit < 1 {
		return errors.New("record page limit must be at least 1")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// ShareURL returns the public link for a share code.
func (c Config) ShareURL(code string) string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/draws/" + code
}
