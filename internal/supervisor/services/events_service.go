// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"fmt"
)

// EventRouter is satisfied by *events.Bus.
type EventRouter interface {
	Run(ctx context.Context) error
}

// EventRouterService supervises the rating event router. Each Serve call
// starts a fresh router run, so a crashed router is rebuilt on restart.
type EventRouterService struct {
	router EventRouter
	name   string
}

// NewEventRouterService wraps router.
func NewEventRouterService(router EventRouter) *EventRouterService {
	return &EventRouterService{router: router, name: "event-router"}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		// A router that stops on its own is restarted.
		return errors.New("event router stopped unexpectedly")
	}
	return fmt.Errorf("event router failed: %w", err)
}

// String identifies the service in supervisor logs.
func (s *EventRouterService) String() string {
	return s.name
}
