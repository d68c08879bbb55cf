// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/lottery"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
)

// ConfigHandler serves the owner-facing configuration and ledger routes.
// Every route runs behind middleware.RequireOwner.
type ConfigHandler struct {
	svc *lottery.Service
	cfg cliparse.Config
}

func NewConfigHandler(svc *lottery.Service, cfg cliparse.Config) *ConfigHandler {
	return &ConfigHandler{svc: svc, cfg: cfg}
}

// Create handles POST /configs
func (h *ConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	var req models.CreateConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cfg, err := h.svc.CreateConfiguration(r.Context(), caller.OwnerID, req)
	if err != nil {
		writeOwnerError(w, err, "create configuration")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.ConfigResponse{
		Config:   cfg,
		ShareURL: h.cfg.ShareURL(cfg.ShareCode),
	})
}

// List handles GET /configs
func (h *ConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	configs, err := h.svc.ListConfigurations(r.Context(), caller.OwnerID)
	if err != nil {
		writeOwnerError(w, err, "list configurations")
		return
	}
	if configs == nil {
		configs = []models.ConfigSummary{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListConfigsResponse{Configs: configs})
}

// Get handles GET /configs/{id}
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	cfg, records, err := h.svc.GetConfiguration(r.Context(), caller.OwnerID, r.PathValue("id"))
	if err != nil {
		writeOwnerError(w, err, "get configuration")
		return
	}
	if records == nil {
		records = []models.DrawRecord{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConfigDetailResponse{
		Config:   cfg,
		ShareURL: h.cfg.ShareURL(cfg.ShareCode),
		Records:  records,
	})
}

// Update handles PUT /configs/{id}
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	var req models.UpdateConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cfg, err := h.svc.UpdateConfiguration(r.Context(), caller.OwnerID, r.PathValue("id"), req)
	if err != nil {
		writeOwnerError(w, err, "update configuration")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConfigResponse{
		Config:   cfg,
		ShareURL: h.cfg.ShareURL(cfg.ShareCode),
	})
}

// Delete handles DELETE /configs/{id}. Admins may delete any configuration.
func (h *ConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteConfiguration(r.Context(), caller, r.PathValue("id")); err != nil {
		writeOwnerError(w, err, "delete configuration")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /configs/{id}/items
func (h *ConfigHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	var req models.ItemInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	item, err := h.svc.AddItem(r.Context(), caller.OwnerID, r.PathValue("id"), req)
	if err != nil {
		writeOwnerError(w, err, "add item")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AddItemResponse{ItemID: item.ID})
}

// RemoveItem handles DELETE /configs/{id}/items/{itemID}
func (h *ConfigHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	err := h.svc.RemoveItem(r.Context(), caller.OwnerID, r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		writeOwnerError(w, err, "remove item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Draw handles POST /configs/{id}/draw
func (h *ConfigHandler) Draw(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	var req models.OwnerDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rec, outcome, err := h.svc.OwnerDraw(r.Context(), caller.OwnerID, r.PathValue("id"), req.ParticipantName, req.Count)
	if err != nil {
		writeOwnerError(w, err, "draw")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.DrawResponse{Record: rec, Outcome: outcome})
}

// ListRecords handles GET /configs/{id}/records?limit=N
func (h *ConfigHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.svc.ListRecords(r.Context(), caller.OwnerID, r.PathValue("id"), limit)
	if err != nil {
		writeOwnerError(w, err, "list records")
		return
	}
	if records == nil {
		records = []models.DrawRecord{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListRecordsResponse{Records: records})
}
