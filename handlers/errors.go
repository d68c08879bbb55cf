// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
)

// Messages shown to participants. Public routes never echo internal detail.
const (
	msgDrawNotFound = "Draw not found or removed"
	msgTryAgain     = "Please try again"
)

// writePublicError maps a service error for a share-code route.
func writePublicError(w http.ResponseWriter, err error, op string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgDrawNotFound)
	case errors.Is(err, models.ErrInvalidReference):
		middleware.ErrorResponse(w, http.StatusConflict, msgTryAgain)
	case errors.Is(err, draw.ErrEmptyInput):
		middleware.ErrorResponse(w, http.StatusConflict, "Nothing to draw")
	default:
		slog.Error(op+" failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgTryAgain)
	}
}

// writeOwnerError maps a service error for an authenticated owner route.
func writeOwnerError(w http.ResponseWriter, err error, op string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Configuration not found")
	case errors.Is(err, models.ErrInvalidReference):
		middleware.ErrorResponse(w, http.StatusConflict, "Item no longer exists")
	case errors.Is(err, models.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Configuration was changed, reload and try again")
	case errors.Is(err, draw.ErrEmptyInput):
		middleware.ErrorResponse(w, http.StatusConflict, "Nothing to draw")
	default:
		slog.Error(op+" failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+op)
	}
}

// callerOrReject fetches the authenticated caller. RequireOwner always sets
// it, so a miss means the route was wired without the middleware.
func callerOrReject(w http.ResponseWriter, r *http.Request) (models.Caller, bool) {
	caller, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
	}
	return caller, ok
}
