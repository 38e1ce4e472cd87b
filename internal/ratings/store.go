// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package ratings holds explicit user ratings of catalog books.
//
// The Store is the only mutable state in the recommender. Users and each
// user's ratings enumerate in first-seen order; overwriting a rating keeps
// its original position. Recommendation output depends on this order, so
// it is part of the contract.
package ratings

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

// Rating value bounds, inclusive.
const (
	MinValue = 1.0
	MaxValue = 5.0
)

// ErrInvalidRating is wrapped by every ValidationError.
var ErrInvalidRating = errors.New("invalid rating")

// ValidationError reports a rejected Add. The store is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rating: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidRating) match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRating
}

// Rating is one user's value for one item.
type Rating struct {
	ItemID int     `json:"book_id"`
	Value  float64 `json:"rating"`
}

type userRatings struct {
	order []int
	value map[int]float64
}

// Store is a concurrency-safe, insertion-ordered user -> item -> value map.
type Store struct {
	mu      sync.RWMutex
	users   []string
	byUser  map[string]*userRatings
	count   int
	version uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byUser: make(map[string]*userRatings)}
}

// Validate checks a rating without touching any store.
func Validate(userID string, value float64) error {
	if strings.TrimSpace(userID) == "" {
		return &ValidationError{Field: "user_id", Reason: "must not be empty"}
	}
	if math.IsNaN(value) || value < MinValue || value > MaxValue {
		return &ValidationError{
			Field:  "rating",
			Reason: fmt.Sprintf("%v outside [%.1f, %.1f]", value, MinValue, MaxValue),
		}
	}
	return nil
}

// Add inserts or overwrites the rating for (userID, itemID). It returns a
// *ValidationError, and changes nothing, when the value is out of range.
// The item id is not checked against any catalog.
func (s *Store) Add(userID string, itemID int, value float64) error {
	if err := Validate(userID, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ur, ok := s.byUser[userID]
	if !ok {
		ur = &userRatings{value: make(map[int]float64)}
		s.byUser[userID] = ur
		s.users = append(s.users, userID)
	}
	if _, seen := ur.value[itemID]; !seen {
		ur.order = append(ur.order, itemID)
		s.count++
	}
	ur.value[itemID] = value
	s.version++
	return nil
}

// RatingsOf returns the user's ratings in first-rated order. Unknown users
// get an empty, non-nil slice.
func (s *Store) RatingsOf(userID string) []Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratingsLocked(userID)
}

func (s *Store) ratingsLocked(userID string) []Rating {
	ur, ok := s.byUser[userID]
	if !ok {
		return []Rating{}
	}
	out := make([]Rating, len(ur.order))
	for i, id := range ur.order {
		out[i] = Rating{ItemID: id, Value: ur.value[id]}
	}
	return out
}

// Get returns a single rating value.
func (s *Store) Get(userID string, itemID int) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ur, ok := s.byUser[userID]
	if !ok {
		return 0, false
	}
	v, ok := ur.value[itemID]
	return v, ok
}

// HasRatings reports whether the user has rated anything.
func (s *Store) HasRatings(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byUser[userID]
	return ok
}

// Users returns every user with at least one rating, first-seen order.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.users))
	copy(out, s.users)
	return out
}

// UserRatings pairs a user with their ordered ratings.
type UserRatings struct {
	UserID  string
	Ratings []Rating
}

// Snapshot copies every user's ratings under a single read lock, so the
// result is consistent even while writers are active.
func (s *Store) Snapshot() []UserRatings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UserRatings, len(s.users))
	for i, u := range s.users {
		out[i] = UserRatings{UserID: u, Ratings: s.ratingsLocked(u)}
	}
	return out
}

// Len returns the number of stored (user, item) pairs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Version increases on every successful Add, including overwrites.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
