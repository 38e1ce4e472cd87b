// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/auth"
	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/ratings"
	"github.com/tomtom215/folio/internal/recommend"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// ContentIndex is the part of the content index the API reads directly.
type ContentIndex interface {
	Similarity(a, b int) (float64, bool)
	VocabularySize() int
}

// Dependencies are the components the handlers serve.
type Dependencies struct {
	Engine  *recommend.Engine
	Catalog *catalog.Store
	Index   ContentIndex
	Ratings *ratings.Store

	// Activity backs /books/trending. Optional; the endpoint returns an
	// empty list without it.
	Activity *events.Activity

	// LiveFeed serves the rating activity WebSocket at /api/v1/ws.
	// Optional; the route is not registered without it.
	LiveFeed http.Handler

	// Auth, when set, requires a bearer token on rating writes.
	Auth *auth.JWTManager
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: health endpoints
//   - handlers_books.go: catalog browsing
//   - handlers_ratings.go: rating writes, user ratings and stats
//   - handlers_recommend.go: recommendation strategies and explain
type Handler struct {
	engine    *recommend.Engine
	catalog   *catalog.Store
	index     ContentIndex
	ratings   *ratings.Store
	activity  *events.Activity
	liveFeed  http.Handler
	auth      *auth.JWTManager
	startTime time.Time
}

// NewHandler creates a handler. Engine, Catalog, Index and Ratings are
// required.
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Engine == nil:
		return nil, errors.New("api: engine is required")
	case deps.Catalog == nil:
		return nil, errors.New("api: catalog is required")
	case deps.Index == nil:
		return nil, errors.New("api: content index is required")
	case deps.Ratings == nil:
		return nil, errors.New("api: rating store is required")
	}

	return &Handler{
		engine:    deps.Engine,
		catalog:   deps.Catalog,
		index:     deps.Index,
		ratings:   deps.Ratings,
		activity:  deps.Activity,
		liveFeed:  deps.LiveFeed,
		auth:      deps.Auth,
		startTime: time.Now(),
	}, nil
}

// defaultK is the result count used when a request omits k.
func (h *Handler) defaultK() int {
	return h.engine.Config().Limits.DefaultK
}
