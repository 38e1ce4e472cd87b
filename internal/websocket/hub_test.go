// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/folio/internal/events"
)

// startHub runs a hub until the test ends.
func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

// fakeClient has no connection; tests read its send channel directly.
func fakeClient(hub *Hub, buffer int) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, buffer)}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) (Message, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}, false
	}
}

func TestHubBroadcastsRatingAdded(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	a, b := fakeClient(hub, 4), fakeClient(hub, 4)
	hub.Register <- a
	hub.Register <- b
	waitForClients(t, hub, 2)

	event := events.NewRatingAdded("user1", 7, 4.5)
	if err := hub.HandleRatingAdded(context.Background(), event); err != nil {
		t.Fatalf("HandleRatingAdded() error = %v", err)
	}

	for _, c := range []*Client{a, b} {
		msg, ok := receive(t, c)
		if !ok {
			t.Fatal("send channel closed")
		}
		if msg.Type != MessageTypeRatingAdded {
			t.Errorf("Type = %q", msg.Type)
		}
		data, _ := msg.Data.(RatingAddedData)
		if data.UserID != "user1" || data.BookID != 7 || data.Rating != 4.5 {
			t.Errorf("Data = %+v", msg.Data)
		}
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	c := fakeClient(hub, 1)
	hub.Register <- c
	waitForClients(t, hub, 1)

	hub.Unregister <- c
	waitForClients(t, hub, 0)
	if _, ok := <-c.send; ok {
		t.Error("send channel should be closed after unregister")
	}

	// A second unregister of the same client is ignored.
	hub.Unregister <- c
	waitForClients(t, hub, 0)
}

func TestHubDropsSlowClients(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	slow := fakeClient(hub, 0)
	fast := fakeClient(hub, 4)
	hub.Register <- slow
	hub.Register <- fast
	waitForClients(t, hub, 2)

	hub.BroadcastJSON(MessageTypeRatingAdded, RatingAddedData{BookID: 1})
	if _, ok := receive(t, fast); !ok {
		t.Fatal("fast client should receive the broadcast")
	}
	waitForClients(t, hub, 1)
	if _, ok := <-slow.send; ok {
		t.Error("slow client channel should be closed")
	}
}

func TestHubShutdownClosesClients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	c := fakeClient(hub, 1)
	hub.Register <- c
	waitForClients(t, hub, 1)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after shutdown", hub.ClientCount())
	}
	if _, ok := <-c.send; ok {
		t.Error("client channel should be closed on shutdown")
	}
}

func TestBroadcastJSONFullBuffer(t *testing.T) {
	t.Parallel()

	// Not running, so nothing drains the buffer.
	hub := NewHub()
	for i := 0; i < cap(hub.broadcast); i++ {
		if !hub.BroadcastJSON(MessageTypeRatingAdded, i) {
			t.Fatalf("broadcast %d rejected before buffer was full", i)
		}
	}
	if hub.BroadcastJSON(MessageTypeRatingAdded, "overflow") {
		t.Error("BroadcastJSON should report a dropped message")
	}
	// Handler errors would trigger bus retries; dropping is not an error.
	if err := hub.HandleRatingAdded(context.Background(), events.NewRatingAdded("u", 1, 3)); err != nil {
		t.Errorf("HandleRatingAdded() = %v, want nil", err)
	}
}

func TestShutdownReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()

	if got := shutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled: %q", got)
	}
	if got := shutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline: %q", got)
	}
}
