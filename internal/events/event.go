// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package events carries rating events through an in-process Watermill
// pub/sub.
//
// Every rating the engine accepts is published on TopicRatingAdded. A
// Watermill router delivers each message to the registered handlers with
// panic recovery and retries. The Activity projection is the built-in
// consumer and backs the trending books endpoint.
//
// Delivery is at-most-once across restarts: the pub/sub lives in memory,
// and messages published while no router is running are dropped.
package events

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/folio/internal/ratings"
)

// SchemaVersion is the current RatingAdded schema.
const SchemaVersion = 1

// TopicRatingAdded carries one message per accepted rating.
const TopicRatingAdded = "folio.ratings.added"

// ErrInvalidEvent is wrapped by every event validation failure.
var ErrInvalidEvent = errors.New("invalid event")

// RatingAdded records one accepted rating.
type RatingAdded struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	BookID        int       `json:"book_id"`
	Rating        float64   `json:"rating"`
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id,omitempty"`
}

// NewRatingAdded creates an event with a fresh id and the current time.
func NewRatingAdded(userID string, bookID int, rating float64) *RatingAdded {
	return &RatingAdded{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		UserID:        userID,
		BookID:        bookID,
		Rating:        rating,
		Timestamp:     time.Now().UTC(),
	}
}

// Validate checks the event's required fields.
func (e *RatingAdded) Validate() error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	case strings.TrimSpace(e.UserID) == "":
		return fmt.Errorf("%w: user_id is required", ErrInvalidEvent)
	case math.IsNaN(e.Rating) || e.Rating < ratings.MinValue || e.Rating > ratings.MaxValue:
		return fmt.Errorf("%w: rating %v out of range", ErrInvalidEvent, e.Rating)
	case e.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEvent)
	}
	return nil
}
