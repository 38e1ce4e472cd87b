// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/ratings"
)

// Strategy names a recommendation strategy. Used for metrics labels and
// cache keys.
type Strategy string

const (
	StrategyContent       Strategy = "content"
	StrategyCollaborative Strategy = "collaborative"
	StrategyHybrid        Strategy = "hybrid"
	StrategyPopular       Strategy = "popular"
)

// ScoredID is an item id with a similarity score.
type ScoredID struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
}

// HybridRequest holds the optional inputs of a hybrid recommendation.
type HybridRequest struct {
	// UserID enables the collaborative half when non-empty.
	UserID string `json:"user_id,omitempty"`

	// ItemID enables the content half when non-nil.
	ItemID *int `json:"book_id,omitempty"`

	// K is the exact number of results wanted (fewer only if the catalog
	// runs out).
	K int `json:"k"`
}

// Explanation lists why a book was recommended relative to a base book.
type Explanation struct {
	Book    catalog.Book `json:"book"`
	Reasons []string     `json:"reasons"`
}

// ReadingStats summarizes one user's ratings.
type ReadingStats struct {
	// UserID is the user the stats describe.
	UserID string `json:"user_id"`

	// HasRatings is false when the user has never rated anything; every
	// other field is then zero.
	HasRatings bool `json:"has_ratings"`

	// TotalRated counts distinct rated books, including unknown ids.
	TotalRated int `json:"total_books_rated"`

	// AverageRating is the mean rating value, rounded to two decimals.
	AverageRating float64 `json:"average_rating"`

	// TotalPages sums pages of the rated books found in the catalog.
	TotalPages int `json:"total_pages_read"`

	// FavoriteGenre is the most rated genre; ties go to the genre seen
	// first in catalog order. "None" when no rated book is in the catalog.
	FavoriteGenre string `json:"favorite_genre"`

	// GenreDistribution counts rated books per genre.
	GenreDistribution map[string]int `json:"genre_distribution"`

	// FiveStarBooks lists ids rated exactly 5.0, in rating order.
	FiveStarBooks []int `json:"highest_rated_books"`
}

// Catalog is the read-only book source the engine consumes.
type Catalog interface {
	ItemByID(id int) (catalog.Book, bool)
	ItemsByIDs(ids []int) []catalog.Book
	Popular(k int) []catalog.Book
	Len() int
}

// SimilarityIndex ranks items by content similarity.
type SimilarityIndex interface {
	TopSimilar(itemID, k int) []ScoredID
}

// PeerFinder finds users whose ratings correlate with a target user.
type PeerFinder interface {
	SimilarUsers(userID string, threshold float64, minCommon int) []string
}

// RatingStore is the mutable rating state.
type RatingStore interface {
	Add(userID string, itemID int, value float64) error
	RatingsOf(userID string) []ratings.Rating
	HasRatings(userID string) bool
	Len() int
	Version() uint64
}

// RatingListener is notified after a rating is stored.
type RatingListener interface {
	RatingAdded(ctx context.Context, userID string, itemID int, value float64)
}
