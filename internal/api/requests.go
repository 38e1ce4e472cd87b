// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Query parameter structs validated with go-playground/validator before a
// handler touches the engine.
//
// Example usage:
//
//	req := ContentRequest{BookID: bookID, K: k}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondError(w, r, http.StatusBadRequest, apiErr, nil)
//	    return
//	}
package api

// ListRequest bounds a list endpoint.
type ListRequest struct {
	Limit int `json:"limit" validate:"min=1,max=1000"`
}

// SearchRequest is the query of GET /books/search.
type SearchRequest struct {
	Query string `json:"q" validate:"required,max=200"`
	Field string `json:"field" validate:"omitempty,oneof=all title author genre description"`
}

// ContentRequest is the query of GET /recommendations/content. k above the
// engine's MaxK is capped, not rejected.
type ContentRequest struct {
	BookID int `json:"book_id" validate:"required,gt=0"`
	K      int `json:"k" validate:"min=0,max=1000"`
}

// CollaborativeRequest is the query of GET /recommendations/collaborative.
type CollaborativeRequest struct {
	UserID string `json:"user_id" validate:"required,userid,max=128"`
	K      int    `json:"k" validate:"min=0,max=1000"`
}

// HybridQuery is the query of GET /recommendations/hybrid. Both inputs are
// optional.
type HybridQuery struct {
	UserID string `json:"user_id" validate:"omitempty,userid,max=128"`
	BookID *int   `json:"book_id" validate:"omitempty,gt=0"`
	K      int    `json:"k" validate:"min=0,max=1000"`
}

// PopularRequest is the query of GET /recommendations/popular and the
// popular/recent book lists.
type PopularRequest struct {
	K int `json:"k" validate:"min=0,max=1000"`
}

// UserRequest validates a user id taken from the path.
type UserRequest struct {
	UserID string `json:"user_id" validate:"required,userid,max=128"`
}
