// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"math"

	"github.com/tomtom215/folio/internal/ratings"
)

// NoFavoriteGenre is reported when none of a user's rated books are in the
// catalog.
const NoFavoriteGenre = "None"

// ReadingStats summarizes userID's ratings. Users without ratings get
// HasRatings=false and zero values.
func (e *Engine) ReadingStats(userID string) ReadingStats {
	stats := ReadingStats{
		UserID:            userID,
		GenreDistribution: map[string]int{},
		FiveStarBooks:     []int{},
	}

	rated := e.ratings.RatingsOf(userID)
	if len(rated) == 0 {
		return stats
	}

	stats.HasRatings = true
	stats.TotalRated = len(rated)

	ids := make([]int, len(rated))
	var sum float64
	for i, r := range rated {
		ids[i] = r.ItemID
		sum += r.Value
		if r.Value == ratings.MaxValue {
			stats.FiveStarBooks = append(stats.FiveStarBooks, r.ItemID)
		}
	}
	stats.AverageRating = math.Round(sum/float64(len(rated))*100) / 100

	// Genres are ranked in the order the catalog first lists them, so the
	// earliest genre wins a tie.
	var genres []string
	for _, b := range e.catalog.ItemsByIDs(ids) {
		stats.TotalPages += b.Pages
		if stats.GenreDistribution[b.Genre] == 0 {
			genres = append(genres, b.Genre)
		}
		stats.GenreDistribution[b.Genre]++
	}

	stats.FavoriteGenre = NoFavoriteGenre
	best := 0
	for _, g := range genres {
		if n := stats.GenreDistribution[g]; n > best {
			best = n
			stats.FavoriteGenre = g
		}
	}
	return stats
}
