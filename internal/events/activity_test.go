// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/folio/internal/logging"
)

func TestActivityTrending(t *testing.T) {
	t.Parallel()

	a := NewActivity(logging.NewTestLogger(io.Discard))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	apply := func(user string, book int, rating float64, offset time.Duration) {
		e := NewRatingAdded(user, book, rating)
		e.Timestamp = base.Add(offset)
		if err := a.Handle(ctx, e); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}

	apply("u1", 7, 4.0, 0)
	apply("u2", 3, 5.0, time.Minute)
	apply("u3", 7, 5.0, 2*time.Minute)
	apply("u1", 9, 3.0, 3*time.Minute)
	apply("u2", 9, 3.0, 4*time.Minute)
	apply("u3", 12, 5.0, 5*time.Minute)

	got := a.Trending(10)
	wantIDs := []int{7, 9, 3, 12}
	if len(got) != len(wantIDs) {
		t.Fatalf("Trending(10) returned %d books, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].BookID != id {
			t.Errorf("position %d = book %d, want %d (%+v)", i, got[i].BookID, id, got)
		}
	}
	if got[0].Events != 2 || got[0].AverageRating != 4.5 {
		t.Errorf("book 7 = %+v, want 2 events averaging 4.5", got[0])
	}
	if !got[0].LastRatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("book 7 last rated at %v", got[0].LastRatedAt)
	}

	if got := a.Trending(2); len(got) != 2 || got[1].BookID != 9 {
		t.Errorf("Trending(2) = %+v", got)
	}
	if got := a.Trending(0); len(got) != 0 {
		t.Errorf("Trending(0) = %+v, want empty", got)
	}
	if a.Total() != 6 {
		t.Errorf("Total() = %d, want 6", a.Total())
	}
}
