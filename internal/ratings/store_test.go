// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package ratings

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
)

func TestAddValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		user    string
		value   float64
		wantErr bool
	}{
		{"lower bound", "u1", 1.0, false},
		{"upper bound", "u1", 5.0, false},
		{"fractional", "u1", 3.5, false},
		{"above range", "u9", 6.0, true},
		{"below range", "u9", 0.5, true},
		{"NaN", "u9", math.NaN(), true},
		{"infinite", "u9", math.Inf(1), true},
		{"blank user", "  ", 3.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewStore()
			err := s.Add(tt.user, 1, tt.value)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Add() error = %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Add() error = %v, want *ValidationError", err)
			}
			if !errors.Is(err, ErrInvalidRating) {
				t.Error("error should wrap ErrInvalidRating")
			}
			if s.HasRatings(tt.user) || len(s.Users()) != 0 || s.Version() != 0 {
				t.Error("rejected rating must leave the store unchanged")
			}
		})
	}
}

func TestRejectedRatingLeavesExistingUserUntouched(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if err := s.Add("u9", 2, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("u9", 1, 6.0); err == nil {
		t.Fatal("expected validation error")
	}
	got := s.RatingsOf("u9")
	if len(got) != 1 || got[0] != (Rating{ItemID: 2, Value: 4.0}) {
		t.Errorf("RatingsOf(u9) = %v", got)
	}
}

func TestOrderingAndOverwrite(t *testing.T) {
	t.Parallel()

	s := NewStore()
	mustAdd := func(u string, item int, v float64) {
		t.Helper()
		if err := s.Add(u, item, v); err != nil {
			t.Fatal(err)
		}
	}
	mustAdd("u2", 5, 3.0)
	mustAdd("u1", 3, 4.0)
	mustAdd("u2", 1, 2.0)
	mustAdd("u2", 5, 4.5)

	if got := s.Users(); len(got) != 2 || got[0] != "u2" || got[1] != "u1" {
		t.Errorf("Users() = %v, want [u2 u1]", got)
	}

	want := []Rating{{ItemID: 5, Value: 4.5}, {ItemID: 1, Value: 2.0}}
	got := s.RatingsOf("u2")
	if len(got) != len(want) {
		t.Fatalf("RatingsOf(u2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RatingsOf(u2)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.Version() != 4 {
		t.Errorf("Version() = %d, want 4", s.Version())
	}
	if v, ok := s.Get("u2", 5); !ok || v != 4.5 {
		t.Errorf("Get(u2, 5) = %v, %v", v, ok)
	}
}

func TestUnknownUser(t *testing.T) {
	t.Parallel()

	s := NewStore()
	got := s.RatingsOf("nobody")
	if got == nil || len(got) != 0 {
		t.Errorf("RatingsOf(nobody) = %#v, want empty non-nil", got)
	}
	if _, ok := s.Get("nobody", 1); ok {
		t.Error("Get should miss for unknown user")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_ = s.Add("u1", 1, 5.0)
	snap := s.Snapshot()
	_ = s.Add("u1", 2, 4.0)

	if len(snap) != 1 || len(snap[0].Ratings) != 1 {
		t.Errorf("snapshot changed after write: %+v", snap)
	}
}

func TestConcurrentAdds(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			user := fmt.Sprintf("user%d", w)
			for i := 1; i <= 50; i++ {
				_ = s.Add(user, i, 3.0)
				_ = s.Snapshot()
			}
		}(w)
	}
	wg.Wait()

	if s.Len() != 400 {
		t.Errorf("Len() = %d, want 400", s.Len())
	}
	if len(s.Users()) != 8 {
		t.Errorf("Users() = %d, want 8", len(s.Users()))
	}
}
