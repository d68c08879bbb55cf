// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-draw/auth"
	"github.com/danielhkuo/quickly-draw/models"
)

type callerKey struct{}

// RequireOwner rejects requests without a valid owner bearer token and
// stores the caller for OwnerFromContext.
func RequireOwner(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			w.Header().Set("WWW-Authenticate", `Bearer realm="quickly-draw"`)
			ErrorResponse(w, http.StatusUnauthorized, "Missing or malformed bearer token")
			return
		}

		identity, err := auth.ParseOwnerToken(token, secret, time.Now())
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Token expired"
			}
			slog.Debug("owner token rejected", "error", err)
			w.Header().Set("WWW-Authenticate", `Bearer realm="quickly-draw", error="invalid_token"`)
			ErrorResponse(w, http.StatusUnauthorized, message)
			return
		}

		caller := models.Caller{OwnerID: identity.OwnerID, Admin: identity.Role == models.RoleAdmin}
		next(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
	}
}

// OwnerFromContext returns the caller stored by RequireOwner.
func OwnerFromContext(ctx context.Context) (models.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(models.Caller)
	return caller, ok
}
