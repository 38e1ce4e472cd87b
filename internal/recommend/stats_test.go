// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend_test

import (
	"reflect"
	"testing"

	"github.com/tomtom215/folio/internal/recommend"
)

func TestReadingStats(t *testing.T) {
	t.Parallel()

	f := sampleFixture(t)
	f.seedDemo(t)
	f.rate(t, "tie", map[int]float64{2: 3.0, 1: 4.0}, 2, 1)
	f.rate(t, "stale", map[int]float64{999: 5.0}, 999)

	tests := []struct {
		user string
		want recommend.ReadingStats
	}{
		{
			user: "user1",
			want: recommend.ReadingStats{
				UserID:        "user1",
				HasRatings:    true,
				TotalRated:    5,
				AverageRating: 4.5,
				TotalPages:    376 + 328 + 1216 + 309 + 512,
				FavoriteGenre: "Fantasy",
				GenreDistribution: map[string]int{
					"Fiction": 1, "Dystopian Fiction": 1, "Fantasy": 2, "Non-Fiction": 1,
				},
				FiveStarBooks: []int{1, 6},
			},
		},
		{
			// Both genres have one book; Fiction (book 1) comes first in the catalog.
			user: "tie",
			want: recommend.ReadingStats{
				UserID:            "tie",
				HasRatings:        true,
				TotalRated:        2,
				AverageRating:     3.5,
				TotalPages:        376 + 328,
				FavoriteGenre:     "Fiction",
				GenreDistribution: map[string]int{"Fiction": 1, "Dystopian Fiction": 1},
				FiveStarBooks:     []int{},
			},
		},
		{
			user: "stale",
			want: recommend.ReadingStats{
				UserID:            "stale",
				HasRatings:        true,
				TotalRated:        1,
				AverageRating:     5,
				FavoriteGenre:     recommend.NoFavoriteGenre,
				GenreDistribution: map[string]int{},
				FiveStarBooks:     []int{999},
			},
		},
		{
			user: "nobody",
			want: recommend.ReadingStats{
				UserID:            "nobody",
				GenreDistribution: map[string]int{},
				FiveStarBooks:     []int{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			t.Parallel()
			if got := f.engine.ReadingStats(tt.user); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadingStats(%s) =\n%+v\nwant\n%+v", tt.user, got, tt.want)
			}
		})
	}
}

func TestReadingStatsRoundsAverage(t *testing.T) {
	t.Parallel()

	f := sampleFixture(t)
	f.rate(t, "u", map[int]float64{1: 4.0, 2: 4.0, 3: 5.0}, 1, 2, 3)

	if got := f.engine.ReadingStats("u").AverageRating; got != 4.33 {
		t.Errorf("AverageRating = %v, want 4.33", got)
	}
}
