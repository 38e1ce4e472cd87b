// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import "context"

// WebSocketHub is satisfied by *websocket.Hub.
type WebSocketHub interface {
	RunWithContext(ctx context.Context) error
}

// WebSocketHubService supervises the live activity hub.
type WebSocketHubService struct {
	hub  WebSocketHub
	name string
}

// NewWebSocketHubService wraps hub.
func NewWebSocketHubService(hub WebSocketHub) *WebSocketHubService {
	return &WebSocketHubService{hub: hub, name: "websocket-hub"}
}

// Serve implements suture.Service. The hub only returns on cancellation.
func (s *WebSocketHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String identifies the service in supervisor logs.
func (s *WebSocketHubService) String() string {
	return s.name
}
