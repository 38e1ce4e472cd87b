// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/folio/internal/auth"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/ratings"
)

// AddRating handles POST /api/v1/ratings.
//
// The book must exist in the catalog; a later rating of the same book by
// the same user overwrites the earlier one.
func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RatingRequest
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
	// With auth enabled a token may only rate as its own subject.
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok && claims.UserID() != req.UserID {
		respondError(w, r, http.StatusForbidden, &models.APIError{
			Code:    ErrCodeForbidden,
			Message: "token does not belong to user_id",
		}, nil)
		return
	}
	if _, ok := h.catalog.ItemByID(req.BookID); !ok {
		respondNotFound(w, r, "book not found")
		return
	}

	if err := h.engine.AddRating(r.Context(), req.UserID, req.BookID, req.Rating); err != nil {
		var verr *ratings.ValidationError
		if errors.As(err, &verr) {
			respondValidation(w, r, err.Error(), verr.Field)
			return
		}
		respondError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    ErrCodeInternal,
			Message: "failed to store rating",
		}, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, models.RatingResponse{
		UserID:     req.UserID,
		BookID:     req.BookID,
		Rating:     req.Rating,
		TotalRated: len(h.ratings.RatingsOf(req.UserID)),
	}, start)
}

// UserRatings handles GET /api/v1/users/{userID}/ratings. A user who has
// never rated gets an empty list, not a 404.
func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := h.userParam(w, r)
	if !ok {
		return
	}

	rated := h.ratings.RatingsOf(userID)
	out := make([]models.RatedBook, len(rated))
	for i, rt := range rated {
		out[i] = models.RatedBook{BookID: rt.ItemID, Rating: rt.Value}
		if book, found := h.catalog.ItemByID(rt.ItemID); found {
			out[i].Book = &book
		}
	}

	respondSuccess(w, r, http.StatusOK, models.UserRatingsResponse{
		UserID:  userID,
		Ratings: out,
		Stats:   h.engine.ReadingStats(userID),
	}, start)
}

// UserStats handles GET /api/v1/users/{userID}/stats.
func (h *Handler) UserStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := h.userParam(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, h.engine.ReadingStats(userID), start)
}

func (h *Handler) userParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := url.PathUnescape(chi.URLParam(r, "userID"))
	if err != nil {
		respondValidation(w, r, "user_id is not a valid path segment", "user_id")
		return "", false
	}
	req := UserRequest{UserID: userID}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return "", false
	}
	return userID, true
}
