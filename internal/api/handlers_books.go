// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

const defaultListLimit = 100

// ListBooks handles GET /api/v1/books?limit=N in catalog order.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := getIntParam(r, "limit", defaultListLimit)
	if err != nil {
		respondValidation(w, r, err.Error(), "limit")
		return
	}
	req := ListRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	books := h.catalog.All()
	if len(books) > req.Limit {
		books = books[:req.Limit]
	}
	respondSuccess(w, r, http.StatusOK, models.BookListResponse{Total: h.catalog.Len(), Books: books}, start)
}

// GetBook handles GET /api/v1/books/{id}.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err.Error(), "id")
		return
	}
	book, ok := h.catalog.ItemByID(id)
	if !ok {
		respondNotFound(w, r, "book not found")
		return
	}
	respondSuccess(w, r, http.StatusOK, book, start)
}

// SearchBooks handles GET /api/v1/books/search?q=...&field=title|author|genre|description|all.
func (h *Handler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := SearchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Field: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("field"))),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	field, _ := catalog.ParseSearchField(req.Field)
	books := h.catalog.Search(req.Query, field)
	respondSuccess(w, r, http.StatusOK, models.BookListResponse{Total: len(books), Books: books}, start)
}

// BooksByGenre handles GET /api/v1/books/genre/{genre}.
func (h *Handler) BooksByGenre(w http.ResponseWriter, r *http.Request) {
	h.booksByField(w, r, "genre", h.catalog.ByGenre)
}

// BooksByAuthor handles GET /api/v1/books/author/{author}.
func (h *Handler) BooksByAuthor(w http.ResponseWriter, r *http.Request) {
	h.booksByField(w, r, "author", h.catalog.ByAuthor)
}

func (h *Handler) booksByField(w http.ResponseWriter, r *http.Request, param string, lookup func(string, int) []catalog.Book) {
	start := time.Now()

	value, err := url.PathUnescape(chi.URLParam(r, param))
	if err != nil || strings.TrimSpace(value) == "" {
		respondValidation(w, r, param+" is required", param)
		return
	}
	limit, err := getIntParam(r, "limit", defaultListLimit)
	if err != nil {
		respondValidation(w, r, err.Error(), "limit")
		return
	}
	req := ListRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	books := lookup(strings.TrimSpace(value), req.Limit)
	respondSuccess(w, r, http.StatusOK, models.BookListResponse{Total: len(books), Books: books}, start)
}

// PopularBooks handles GET /api/v1/books/popular?k=N by declared rating.
func (h *Handler) PopularBooks(w http.ResponseWriter, r *http.Request) {
	h.rankedBooks(w, r, h.catalog.Popular)
}

// RecentBooks handles GET /api/v1/books/recent?k=N by publication year.
func (h *Handler) RecentBooks(w http.ResponseWriter, r *http.Request) {
	h.rankedBooks(w, r, h.catalog.Recent)
}

func (h *Handler) rankedBooks(w http.ResponseWriter, r *http.Request, rank func(int) []catalog.Book) {
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

	books := rank(req.K)
	respondSuccess(w, r, http.StatusOK, models.BookListResponse{Total: len(books), Books: books}, start)
}

// TrendingBooks handles GET /api/v1/books/trending?limit=N, ranked by
// rating activity since startup.
func (h *Handler) TrendingBooks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := getIntParam(r, "limit", h.defaultK())
	if err != nil {
		respondValidation(w, r, err.Error(), "limit")
		return
	}
	req := ListRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	out := []models.TrendingBook{}
	if h.activity != nil {
		for _, a := range h.activity.Trending(req.Limit) {
			tb := models.TrendingBook{BookActivity: a}
			if book, ok := h.catalog.ItemByID(a.BookID); ok {
				tb.Book = &book
			}
			out = append(out, tb)
		}
	}
	respondSuccess(w, r, http.StatusOK, out, start)
}

// BookSimilarity handles GET /api/v1/books/{id}/similarity/{otherID}.
func (h *Handler) BookSimilarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err.Error(), "id")
		return
	}
	otherID, err := pathID(r, "otherID")
	if err != nil {
		respondValidation(w, r, err.Error(), "otherID")
		return
	}

	score, ok := h.index.Similarity(id, otherID)
	if !ok {
		respondNotFound(w, r, "book not found")
		return
	}
	respondSuccess(w, r, http.StatusOK, models.SimilarityResponse{BookID: id, OtherID: otherID, Score: score}, start)
}
