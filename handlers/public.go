// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/lottery"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
)

// PublicHandler serves participants who hold a share code. No identity is
// required; the participant name is a free-text label.
type PublicHandler struct {
	svc *lottery.Service
	cfg cliparse.Config
}

func NewPublicHandler(svc *lottery.Service, cfg cliparse.Config) *PublicHandler {
	return &PublicHandler{svc: svc, cfg: cfg}
}

// GetDraw handles GET /draws/{code}
func (h *PublicHandler) GetDraw(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ResolveByShareCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writePublicError(w, err, "resolve share code")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// Spin handles POST /draws/{code}/spin. The server draws and records.
func (h *PublicHandler) Spin(w http.ResponseWriter, r *http.Request) {
	var req models.SpinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rec, outcome, err := h.svc.Spin(r.Context(), r.PathValue("code"), req.ParticipantName)
	if err != nil {
		writePublicError(w, err, "spin")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.DrawResponse{Record: rec, Outcome: outcome})
}

// SubmitOutcome handles POST /draws/{code}/records. The client drew
// locally; the outcome is checked against the live configuration.
func (h *PublicHandler) SubmitOutcome(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOutcomeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	outcome, err := req.Outcome()
	if err != nil {
		writePublicError(w, err, "submit outcome")
		return
	}

	rec, err := h.svc.SubmitOutcome(r.Context(), r.PathValue("code"), req.ParticipantName, outcome)
	if err != nil {
		slog.Debug("outcome rejected", "code", r.PathValue("code"), "error", err)
		writePublicError(w, err, "submit outcome")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.DrawResponse{Record: rec, Outcome: outcome})
}
