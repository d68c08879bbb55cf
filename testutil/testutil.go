// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/db"
	"github.com/danielhkuo/quickly-draw/lottery"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
)

// SetupTestStore opens a fresh SQLite database under t.TempDir with the
// full schema. It is closed when the test ends.
func SetupTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := db.Open(context.Background(), db.SQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    "sqlite",
		TokenSecret:     "test-token-secret",
		ShareCodeSalt:   "test-share-salt",
		TokenTTL:        time.Hour,
		PublicBaseURL:   "http://draw.test",
		RecordPageLimit: models.DefaultRecordLimit,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// NewTestService builds a service over store configured from cfg.
func NewTestService(store storage.Store, cfg cliparse.Config, opts ...lottery.Option) *lottery.Service {
	base := []lottery.Option{
		lottery.WithShareSalt(cfg.ShareCodeSalt),
		lottery.WithTokens(cfg.TokenSecret, cfg.TokenTTL),
		lottery.WithRecordLimit(cfg.RecordPageLimit),
		lottery.WithAdminEmails(cfg.AdminEmails...),
	}
	return lottery.NewService(store, append(base, opts...)...)
}

// CreateTestOwner registers an owner and returns its ID and bearer token
func CreateTestOwner(t *testing.T, svc *lottery.Service, displayName string) (ownerID, token string) {
	t.Helper()

	owner, token, err := svc.RegisterOwner(context.Background(), displayName, "")
	if err != nil {
		t.Fatalf("Failed to create test owner: %v", err)
	}
	return owner.ID, token
}

// CreateTestWheel creates a weighted wheel with the given item weights,
// named "Item 1", "Item 2", ...
func CreateTestWheel(t *testing.T, svc *lottery.Service, ownerID string, showOdds bool, weights ...int) models.DrawConfiguration {
	t.Helper()

	req := models.CreateConfigRequest{
		Name:     "Test Wheel",
		Mode:     models.ModeWheel,
		ShowOdds: showOdds,
	}
	for i, w := range weights {
		req.Items = append(req.Items, models.ItemInput{Name: "Item " + string(rune('1'+i)), Weight: w})
	}
	return CreateTestConfig(t, svc, ownerID, req)
}

// CreateTestConfig stores a configuration and fails the test on error
func CreateTestConfig(t *testing.T, svc *lottery.Service, ownerID string, req models.CreateConfigRequest) models.DrawConfiguration {
	t.Helper()

	cfg, err := svc.CreateConfiguration(context.Background(), ownerID, req)
	if err != nil {
		t.Fatalf("Failed to create test configuration: %v", err)
	}
	return cfg
}

// BearerHeader returns request headers carrying an owner token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
