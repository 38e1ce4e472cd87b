// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api provides the HTTP REST API layer for Folio.

Key Components:

  - Router: chi route configuration and the middleware stack
  - Handler: request handlers for books, ratings, users and recommendations
  - Response formatting: the models.APIResponse envelope, encoded with goccy/go-json
  - Validation: query and body structs checked with go-playground/validator

API Categories:

1. Health (/api/v1/health):
  - health, health/live, health/ready

2. Books (/api/v1/books):
  - list, search, popular, recent, trending, by genre, by author
  - a single book and the content similarity of two books

3. Ratings and users (/api/v1/ratings, /api/v1/users):
  - POST a rating; list a user's ratings; reading statistics

4. Recommendations (/api/v1/recommendations):
  - content, collaborative, hybrid and popular strategies
  - explain: reasons a set of books relates to a base book

Prometheus metrics are served at /metrics.

Usage Example:

	handler, err := api.NewHandler(api.Dependencies{
	    Engine:   engine,
	    Catalog:  books,
	    Index:    index,
	    Ratings:  store,
	    Activity: activity,
	})
	if err != nil {
	    return err
	}
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}

Error Handling:

Every error uses the models.APIResponse envelope with status "error" and one
of the codes VALIDATION_ERROR (400), NOT_FOUND (404), RATE_LIMIT_EXCEEDED
(429) or INTERNAL_ERROR (500).

Thread Safety:

Handlers hold no per-request state; the engine, catalog and rating store are
safe for concurrent use.
*/
package api
