// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(router.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondNotFound(w, r, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, &models.APIError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method not allowed",
		}, nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Registered outside the /api/v1 group: the metrics and security header
	// middleware there would wrap the writer the upgrade must hijack.
	if router.handler.liveFeed != nil {
		r.With(router.chiMiddleware.RateLimit()).Get("/api/v1/ws", router.handler.liveFeed.ServeHTTP)
	}

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", router.handler.ListBooks)
			r.Get("/search", router.handler.SearchBooks)
			r.Get("/popular", router.handler.PopularBooks)
			r.Get("/recent", router.handler.RecentBooks)
			r.Get("/trending", router.handler.TrendingBooks)
			r.Get("/genre/{genre}", router.handler.BooksByGenre)
			r.Get("/author/{author}", router.handler.BooksByAuthor)
			r.Get("/{id}", router.handler.GetBook)
			r.Get("/{id}/similarity/{otherID}", router.handler.BookSimilarity)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Use(RequireBearer(router.handler.auth))
			r.Use(middleware.MaxBodyBytes(router.chiMiddleware.config.MaxBodyBytes))
			r.Post("/ratings", router.handler.AddRating)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/ratings", router.handler.UserRatings)
			r.Get("/stats", router.handler.UserStats)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/content", router.handler.ContentRecommendations)
			r.Get("/collaborative", router.handler.CollaborativeRecommendations)
			r.Get("/hybrid", router.handler.HybridRecommendations)
			r.Get("/popular", router.handler.PopularRecommendations)
			r.With(middleware.MaxBodyBytes(router.chiMiddleware.config.MaxBodyBytes)).
				Post("/explain", router.handler.Explain)
		})
	})

	return r
}

// requestLogger logs each request at debug level, and 5xx responses at
// error level, with the request-scoped logger.
func (router *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger := logging.Ctx(r.Context())
		event := logger.Debug()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
