// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package models defines the HTTP request and response types of the Folio
// API.
package models

import (
	"time"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/recommend"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"strategy": "hybrid", "books": [...]},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 1}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "rating must be between 1.0 and 5.0",
//	    "details": {"field": "rating"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Codes used by the API:
//   - VALIDATION_ERROR: bad query parameter or body field
//   - NOT_FOUND: unknown book on a lookup or rating
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: unexpected server fault
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	Books          int     `json:"books"`
	Users          int     `json:"users"`
	Ratings        int     `json:"ratings"`
	VocabularySize int     `json:"vocabulary_size"`
	Uptime         float64 `json:"uptime_seconds"`
}

// RatingRequest is the body of POST /api/v1/ratings.
type RatingRequest struct {
	UserID string  `json:"user_id" validate:"required,userid,max=128"`
	BookID int     `json:"book_id" validate:"required,gt=0"`
	Rating float64 `json:"rating" validate:"rating"`
}

// RatingResponse confirms a stored rating.
type RatingResponse struct {
	UserID     string  `json:"user_id"`
	BookID     int     `json:"book_id"`
	Rating     float64 `json:"rating"`
	TotalRated int     `json:"total_rated"`
}

// UserRatingsResponse lists one user's ratings in the order they were first made.
type UserRatingsResponse struct {
	UserID  string                 `json:"user_id"`
	Ratings []RatedBook            `json:"ratings"`
	Stats   recommend.ReadingStats `json:"stats"`
}

// RatedBook is a rating joined with its book. Book is nil when the id is
// not in the catalog.
type RatedBook struct {
	BookID int           `json:"book_id"`
	Rating float64       `json:"rating"`
	Book   *catalog.Book `json:"book,omitempty"`
}

// BookListResponse is a page of books.
type BookListResponse struct {
	Total int            `json:"total"`
	Books []catalog.Book `json:"books"`
}

// RecommendationResponse carries recommended books and, for content and
// hybrid requests with a base book, the reasons for each.
type RecommendationResponse struct {
	Strategy     recommend.Strategy      `json:"strategy"`
	UserID       string                  `json:"user_id,omitempty"`
	BookID       *int                    `json:"book_id,omitempty"`
	K            int                     `json:"k"`
	Books        []catalog.Book          `json:"books"`
	Explanations []recommend.Explanation `json:"explanations,omitempty"`
}

// ExplainRequest is the body of POST /api/v1/recommendations/explain.
type ExplainRequest struct {
	BookID  int   `json:"book_id" validate:"required,gt=0"`
	BookIDs []int `json:"recommended_ids" validate:"required,min=1,max=100,dive,gt=0"`
}

// SimilarityResponse reports the content similarity of two books.
type SimilarityResponse struct {
	BookID  int     `json:"book_id"`
	OtherID int     `json:"other_id"`
	Score   float64 `json:"score"`
}

// TrendingBook is rating activity joined with its book. Book is nil when
// the id is not in the catalog.
type TrendingBook struct {
	events.BookActivity
	Book *catalog.Book `json:"book,omitempty"`
}
