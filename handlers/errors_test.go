// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/models"
)

func TestWriteOwnerError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"validation", models.NewValidationError("name", "name is required"), http.StatusBadRequest, "name is required"},
		{"not found", fmt.Errorf("remove item: %w", models.ErrNotFound), http.StatusNotFound, "Configuration not found"},
		{"stale item", models.ErrInvalidReference, http.StatusConflict, "Item no longer exists"},
		{"concurrent edit", fmt.Errorf("update configuration: %w", models.ErrConflict), http.StatusConflict, "reload and try again"},
		{"empty", draw.ErrEmptyInput, http.StatusConflict, "Nothing to draw"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Failed to update configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeOwnerError(w, tt.err, "update configuration")

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("Expected body to contain %q, got %s", tt.expectedBody, w.Body.String())
			}
			if strings.Contains(w.Body.String(), "disk on fire") {
				t.Errorf("Internal error leaked: %s", w.Body.String())
			}
		})
	}
}

func TestWritePublicErrorHidesDetail(t *testing.T) {
	w := httptest.NewRecorder()
	writePublicError(w, fmt.Errorf("insert record: %w", errors.New("pq: deadlock")), "spin")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "deadlock") {
		t.Errorf("Internal error leaked: %s", w.Body.String())
	}
}
