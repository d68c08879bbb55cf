// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Draw API.

# Handler Types

Each handler is a struct with service and config dependencies:

  - OwnerHandler: Owner registration
  - ConfigHandler: Configuration management, owner draws and the ledger
  - PublicHandler: Share code resolution and participant draws

Handlers are created via constructor functions that accept *lottery.Service
and Config:

	configHandler := handlers.NewConfigHandler(svc, cfg)

# Owner Routes

	POST   /owners                         → Register (returns bearer token)
	POST   /configs                        → Create
	GET    /configs                        → List
	GET    /configs/{id}                   → Get (with the 50 newest records)
	PUT    /configs/{id}                   → Update
	DELETE /configs/{id}                   → Delete (owner or admin)
	POST   /configs/{id}/items             → AddItem
	DELETE /configs/{id}/items/{itemID}    → RemoveItem
	POST   /configs/{id}/draw              → Draw
	GET    /configs/{id}/records?limit=N   → ListRecords

Everything under /configs requires an Authorization: Bearer header and runs
behind middleware.RequireOwner. Another owner's configuration is reported
as 404, never 403.

# Participant Routes

	GET  /draws/{code}          → GetDraw
	POST /draws/{code}/spin     → Spin (server draws)
	POST /draws/{code}/records  → SubmitOutcome (client drew)

Participants are anonymous. Errors are deliberately vague:

	unknown or deleted code   404 "Draw not found or removed"
	stale item, number, name  409 "Please try again"
	malformed input           400 with the validation message
	anything else             500 "Please try again"
*/
package handlers
