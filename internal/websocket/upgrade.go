// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package websocket

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/folio/internal/logging"
)

// UpgradeHandler upgrades HTTP requests to WebSocket connections and
// registers them with a Hub.
type UpgradeHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewUpgradeHandler accepts connections whose Origin matches one of
// allowedOrigins. "*" allows any origin. Requests without an Origin
// header (non-browser clients) are always accepted.
func NewUpgradeHandler(hub *Hub, allowedOrigins []string) *UpgradeHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = true
	}

	return &UpgradeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed["*"] {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil || u.Host == "" {
					return false
				}
				return allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
			},
		},
	}
}

// ServeHTTP implements http.Handler. The upgrader writes the error
// response itself when the handshake fails.
func (u *UpgradeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := u.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(u.hub, conn)
	u.hub.Register <- client
	client.Start()
}
