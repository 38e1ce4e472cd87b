// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package websocket streams live rating activity to browser clients.

A Hub owns the set of connected clients and fans out messages. Each Client
runs a readPump, which answers application-level pings, and a writePump,
which sends queued messages and keeps the connection alive with protocol
pings.

	┌──────────┐   rating_added   ┌─────────┐
	│ events   │ ───────────────▶ │   Hub   │ ──▶ Client1, Client2, ...
	│ Bus      │                  └─────────┘
	└──────────┘

Messages are JSON objects with a type and a data field:

  - rating_added: {user_id, book_id, rating, timestamp}
  - pong: reply to a client {"type":"ping"}

Wiring:

	hub := websocket.NewHub()
	bus.Handle("websocket", hub.HandleRatingAdded)
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	r.Get("/api/v1/ws", websocket.NewUpgradeHandler(hub, origins).ServeHTTP)

Slow clients whose send buffer fills are disconnected rather than allowed
to stall the broadcast.
*/
package websocket
