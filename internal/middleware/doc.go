// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware shared by the Folio API.

Key Components:

  - RequestID: UUID request ids propagated to the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - MaxBodyBytes: request body size limit for write endpoints

All middleware has the func(http.Handler) http.Handler shape so it can be
passed directly to chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.MaxBodyBytes(1 << 20)).Post("/ratings", h.AddRating)

Metrics are labeled with the chi route pattern (for example
/api/v1/books/{id}) rather than the raw path so that label cardinality stays
bounded by the number of routes.
*/
package middleware
