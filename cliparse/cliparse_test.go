// cliparse/cliparse_test.go
package cliparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setRequired sets the variables every valid configuration needs and
// isolates the test from any .env in the working directory.
func setRequired(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "draw.db")
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("SHARE_CODE_SALT", "test-salt")
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 720*time.Hour {
		t.Errorf("expected default token TTL 720h, got %v", cfg.TokenTTL)
	}
	if cfg.RecordPageLimit != 100 {
		t.Errorf("expected default record limit 100, got %d", cfg.RecordPageLimit)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected token TTL 2h, got %v", cfg.TokenTTL)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected log format json, got %q", cfg.LogFormat)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "other.db", "-token-secret", "s1", "-share-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "other.db" || cfg.TokenSecret != "s1" || cfg.ShareCodeSalt != "s2" {
		t.Errorf("CLI should override env: got %+v", cfg)
	}
}

func TestParseFlags_DotEnvFile(t *testing.T) {
	setRequired(t)
	os.Unsetenv("TOKEN_SECRET")
	t.Setenv("PORT", "7000")

	dotenv := "TOKEN_SECRET=from-file\nPORT=1111\n"
	if err := os.WriteFile(filepath.Join(".", ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TokenSecret != "from-file" {
		t.Errorf("expected secret from .env, got %q", cfg.TokenSecret)
	}
	if cfg.Port != 7000 {
		t.Errorf("environment should win over .env: expected 7000, got %d", cfg.Port)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}, nil, "database URL required"},
		{"missing token secret", map[string]string{"TOKEN_SECRET": ""}, nil, "TOKEN_SECRET required"},
		{"missing share salt", map[string]string{"SHARE_CODE_SALT": ""}, nil, "SHARE_CODE_SALT required"},
		{"unknown database type", nil, []string{"-t", "mongo"}, "unknown database type"},
		{"bad port", map[string]string{"PORT": "abc"}, nil, "parse env"},
		{"bad log level", nil, []string{"-log-level", "loud"}, "invalid log level"},
		{"bad log format", nil, []string{"-log-format", "xml"}, "unknown log format"},
		{"zero record limit", nil, []string{"-record-limit", "0"}, "record page limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseFlags() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseFlags_MemoryNeedsNoURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	cfg, err := ParseFlags([]string{"-t", "memory"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected memory, got %q", cfg.DatabaseType)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := Config{LogLevel: "debug", PublicBaseURL: "https://draw.example/"}

	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v", level, err)
	}
	if got := cfg.ShareURL("abc"); got != "https://draw.example/draws/abc" {
		t.Errorf("ShareURL() = %q", got)
	}
}

func TestParseFlags_AdminEmails(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_EMAILS", "a@example.com,b@example.com")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[1] != "b@example.com" {
		t.Errorf("expected two admin emails from env, got %v", cfg.AdminEmails)
	}

	cfg, err = ParseFlags([]string{"-admin-emails", "root@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.AdminEmails) != 1 || cfg.AdminEmails[0] != "root@example.com" {
		t.Errorf("flag should replace env admin emails, got %v", cfg.AdminEmails)
	}
}
