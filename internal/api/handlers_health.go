// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

// Health handles GET /api/v1/health with catalog, rating and index sizes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := "healthy"
	if h.catalog.Len() == 0 {
		status = "degraded"
	}

	respondSuccess(w, r, http.StatusOK, models.HealthResponse{
		Status:         status,
		Version:        Version,
		Books:          h.catalog.Len(),
		Users:          len(h.ratings.Users()),
		Ratings:        h.ratings.Len(),
		VocabularySize: h.index.VocabularySize(),
		Uptime:         time.Since(h.startTime).Seconds(),
	}, start)
}

// HealthLive is a liveness probe: the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady is a readiness probe: the catalog is loaded and indexed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.catalog.Len() == 0 {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    "NOT_READY",
			Message: "catalog is empty",
		}, nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "ready"}, time.Now())
}
