// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/logging"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeRatingAdded = "rating_added"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// RatingAddedData is the payload of a rating_added message.
type RatingAddedData struct {
	UserID    string    `json:"user_id"`
	BookID    int       `json:"book_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext serves register, unregister and broadcast requests until
// ctx is canceled, then closes every client. It is safe to call again
// after it returns, so a supervisor can restart it.
//
// Shutdown is checked first and client lifecycle events before broadcasts,
// so a client registered before a broadcast always receives it.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()
	logging.Info().Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	logging.Info().Int("total_clients", n).Msg("websocket client disconnected")
}

// shutdown closes all clients. Cancellation is expected, so it is logged
// at info level without an error field.
func (h *Hub) shutdown(ctx context.Context) {
	clientCount := h.ClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(shutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func shutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients must be called with mu held. Clients are ordered by id so
// delivery and close order are reproducible.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients drops clients whose send buffer is full.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var slow []*Client
	for _, client := range h.sortedClients() {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	for _, client := range slow {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClients() {
		close(client.send)
		delete(h.clients, client)
	}
}

// BroadcastJSON queues a message for every connected client. The message
// is dropped when the broadcast buffer is full.
func (h *Hub) BroadcastJSON(messageType string, data any) bool {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
		return true
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
		return false
	}
}

// HandleRatingAdded is an events.HandlerFunc that forwards accepted ratings
// to connected clients. A full buffer drops the message rather than
// failing the handler, since retrying a live feed only delays it.
func (h *Hub) HandleRatingAdded(ctx context.Context, event *events.RatingAdded) error {
	if !h.BroadcastJSON(MessageTypeRatingAdded, RatingAddedData{
		UserID:    event.UserID,
		BookID:    event.BookID,
		Rating:    event.Rating,
		Timestamp: event.Timestamp,
	}) {
		logging.Ctx(ctx).Debug().Int("book_id", event.BookID).Msg("rating_added not broadcast")
	}
	return nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
