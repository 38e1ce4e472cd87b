// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/logging"
)

// BookActivity aggregates the rating events seen for one book.
type BookActivity struct {
	BookID        int       `json:"book_id"`
	Events        int       `json:"events"`
	AverageRating float64   `json:"average_rating"`
	LastRatedAt   time.Time `json:"last_rated_at"`
}

type bookAgg struct {
	events int
	sum    float64
	last   time.Time
	seq    int
}

// Activity is a projection of rating events used for "trending" books.
// Overwritten ratings count as separate events.
type Activity struct {
	mu     sync.RWMutex
	books  map[int]*bookAgg
	total  int
	logger zerolog.Logger
}

// NewActivity creates an empty projection.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewActivity(logger zerolog.Logger) *Activity {
	return &Activity{
		books:  make(map[int]*bookAgg),
		logger: logger.With().Str("component", "activity").Logger(),
	}
}

// Handle applies one event. It satisfies HandlerFunc.
func (a *Activity) Handle(ctx context.Context, event *RatingAdded) error {
	a.mu.Lock()
	agg, ok := a.books[event.BookID]
	if !ok {
		agg = &bookAgg{seq: len(a.books)}
		a.books[event.BookID] = agg
	}
	agg.events++
	agg.sum += event.Rating
	if event.Timestamp.After(agg.last) {
		agg.last = event.Timestamp
	}
	a.total++
	a.mu.Unlock()

	a.logger.Debug().
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Str("event_id", event.EventID).
		Str("user_id", event.UserID).
		Int("book_id", event.BookID).
		Msg("Rating event applied")
	return nil
}

// Trending returns up to limit books ordered by event count, then average
// rating, then the order books were first rated.
func (a *Activity) Trending(limit int) []BookActivity {
	if limit <= 0 {
		return []BookActivity{}
	}

	a.mu.RLock()
	type row struct {
		BookActivity
		seq int
	}
	rows := make([]row, 0, len(a.books))
	for id, agg := range a.books {
		rows = append(rows, row{
			BookActivity: BookActivity{
				BookID:        id,
				Events:        agg.events,
				AverageRating: math.Round(agg.sum/float64(agg.events)*100) / 100,
				LastRatedAt:   agg.last,
			},
			seq: agg.seq,
		})
	}
	a.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Events != rows[j].Events {
			return rows[i].Events > rows[j].Events
		}
		if rows[i].AverageRating != rows[j].AverageRating {
			return rows[i].AverageRating > rows[j].AverageRating
		}
		return rows[i].seq < rows[j].seq
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]BookActivity, len(rows))
	for i := range rows {
		out[i] = rows[i].BookActivity
	}
	return out
}

// Total returns the number of events applied.
func (a *Activity) Total() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.total
}
