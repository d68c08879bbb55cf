// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Draw API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Owners:

	POST /owners - Register and receive a bearer token

Configuration management (requires Authorization: Bearer):

	POST   /configs                      - Create configuration
	GET    /configs                      - List own configurations
	GET    /configs/{id}                 - Details with recent records
	PUT    /configs/{id}                 - Edit
	DELETE /configs/{id}                 - Delete with items and records
	POST   /configs/{id}/items           - Add item
	DELETE /configs/{id}/items/{itemID}  - Remove item
	POST   /configs/{id}/draw            - Draw as the owner
	GET    /configs/{id}/records         - Draw ledger, newest first

Participants (public, uses share code):

	GET  /draws/{code}          - Public view
	POST /draws/{code}/spin     - Server-side draw
	POST /draws/{code}/records  - Record a client-side draw

# Handler Initialization

The router creates handler instances with dependency injection:

	ownerHandler := handlers.NewOwnerHandler(svc, cfg)
	configHandler := handlers.NewConfigHandler(svc, cfg)
	publicHandler := handlers.NewPublicHandler(svc, cfg)

Every route is wrapped with middleware.WithLogging; owner routes also pass
through middleware.RequireOwner. CORS is applied by the caller around the
whole mux.
*/
package router
