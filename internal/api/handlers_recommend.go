// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

// ContentRecommendations handles GET /api/v1/recommendations/content?book_id=N&k=N&explain=true.
// An unknown book yields an empty list.
func (h *Handler) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bookID, err := getIntParam(r, "book_id", 0)
	if err != nil {
		respondValidation(w, r, err.Error(), "book_id")
		return
	}
	k, err := getIntParam(r, "k", h.defaultK())
	if err != nil {
		respondValidation(w, r, err.Error(), "k")
		return
	}
	req := ContentRequest{BookID: bookID, K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	books := h.engine.ContentBased(r.Context(), req.BookID, req.K)
	resp := models.RecommendationResponse{
		Strategy: recommend.StrategyContent,
		BookID:   &req.BookID,
		K:        req.K,
		Books:    books,
	}
	if boolParam(r, "explain") {
		resp.Explanations = h.engine.Explain(req.BookID, books)
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}

// CollaborativeRecommendations handles GET /api/v1/recommendations/collaborative?user_id=U&k=N.
// Users without ratings get the popularity list.
func (h *Handler) CollaborativeRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	k, err := getIntParam(r, "k", h.defaultK())
	if err != nil {
		respondValidation(w, r, err.Error(), "k")
		return
	}
	req := CollaborativeRequest{UserID: r.URL.Query().Get("user_id"), K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.RecommendationResponse{
		Strategy: recommend.StrategyCollaborative,
		UserID:   req.UserID,
		K:        req.K,
		Books:    h.engine.Collaborative(r.Context(), req.UserID, req.K),
	}, start)
}

// HybridRecommendations handles GET /api/v1/recommendations/hybrid?user_id=U&book_id=N&k=N&explain=true.
// Both inputs are optional; without either the result is the popularity list.
func (h *Handler) HybridRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bookID, err := getOptionalIntParam(r, "book_id")
	if err != nil {
		respondValidation(w, r, err.Error(), "book_id")
		return
	}
	k, err := getIntParam(r, "k", h.defaultK())
	if err != nil {
		respondValidation(w, r, err.Error(), "k")
		return
	}
	req := HybridQuery{
		UserID: strings.TrimSpace(r.URL.Query().Get("user_id")),
		BookID: bookID,
		K:      k,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	books := h.engine.Hybrid(r.Context(), recommend.HybridRequest{
		UserID: req.UserID,
		ItemID: req.BookID,
		K:      req.K,
	})
	resp := models.RecommendationResponse{
		Strategy: recommend.StrategyHybrid,
		UserID:   req.UserID,
		BookID:   req.BookID,
		K:        req.K,
		Books:    books,
	}
	if req.BookID != nil && boolParam(r, "explain") {
		resp.Explanations = h.engine.Explain(*req.BookID, books)
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}

// PopularRecommendations handles GET /api/v1/recommendations/popular?k=N.
func (h *Handler) PopularRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	k, err := getIntParam(r, "k", h.defaultK())
	if err != nil {
		respondValidation(w, r, err.Error(), "k")
		return
	}
	req := PopularRequest{K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.RecommendationResponse{
		Strategy: recommend.StrategyPopular,
		K:        req.K,
		Books:    h.engine.Popular(r.Context(), req.K),
	}, start)
}

// Explain handles POST /api/v1/recommendations/explain. Recommended ids
// keep their request order; ids missing from the catalog are skipped.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ExplainRequest
	if status, err := decodeBody(r, &req); err != nil {
		code := ErrCodeValidation
		if status == http.StatusRequestEntityTooLarge {
			code = ErrCodeBodyTooLarge
		}
		respondError(w, r, status, &models.APIError{Code: code, Message: err.Error()}, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if _, ok := h.catalog.ItemByID(req.BookID); !ok {
		respondNotFound(w, r, "book not found")
		return
	}

	books := make([]catalog.Book, 0, len(req.BookIDs))
	for _, id := range req.BookIDs {
		if book, ok := h.catalog.ItemByID(id); ok {
			books = append(books, book)
		}
	}
	respondSuccess(w, r, http.StatusOK, h.engine.Explain(req.BookID, books), start)
}
