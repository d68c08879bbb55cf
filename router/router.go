// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/handlers"
	"github.com/danielhkuo/quickly-draw/lottery"
	"github.com/danielhkuo/quickly-draw/middleware"
)

func NewRouter(svc *lottery.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	ownerHandler := handlers.NewOwnerHandler(svc, cfg)
	configHandler := handlers.NewConfigHandler(svc, cfg)
	publicHandler := handlers.NewPublicHandler(svc, cfg)

	owner := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireOwner(cfg.TokenSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Owner registration
	mux.HandleFunc("POST /owners", middleware.WithLogging(ownerHandler.Register))

	// Configuration management (requires bearer token)
	mux.HandleFunc("POST /configs", owner(configHandler.Create))
	mux.HandleFunc("GET /configs", owner(configHandler.List))
	mux.HandleFunc("GET /configs/{id}", owner(configHandler.Get))
	mux.HandleFunc("PUT /configs/{id}", owner(configHandler.Update))
	mux.HandleFunc("DELETE /configs/{id}", owner(configHandler.Delete))
	mux.HandleFunc("POST /configs/{id}/items", owner(configHandler.AddItem))
	mux.HandleFunc("DELETE /configs/{id}/items/{itemID}", owner(configHandler.RemoveItem))
	mux.HandleFunc("POST /configs/{id}/draw", owner(configHandler.Draw))
	mux.HandleFunc("GET /configs/{id}/records", owner(configHandler.ListRecords))

	// Participant operations (public, uses share code)
	mux.HandleFunc("GET /draws/{code}", middleware.WithLogging(publicHandler.GetDraw))
	mux.HandleFunc("POST /draws/{code}/spin", middleware.WithLogging(publicHandler.Spin))
	mux.HandleFunc("POST /draws/{code}/records", middleware.WithLogging(publicHandler.SubmitOutcome))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-draw API v1"))
	})

	return mux
}
