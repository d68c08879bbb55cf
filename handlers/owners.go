// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/lottery"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
)

type OwnerHandler struct {
	svc *lottery.Service
	cfg cliparse.Config
}

func NewOwnerHandler(svc *lottery.Service, cfg cliparse.Config) *OwnerHandler {
	return &OwnerHandler{svc: svc, cfg: cfg}
}

// Register handles POST /owners
func (h *OwnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterOwnerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	owner, token, err := h.svc.RegisterOwner(r.Context(), req.DisplayName, req.Email)
	if err != nil {
		writeOwnerError(w, err, "register owner")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterOwnerResponse{
		OwnerID: owner.ID,
		Token:   token,
	})
}
