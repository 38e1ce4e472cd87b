// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/ratings"
)

// Fallback reasons recorded in metrics.
const (
	fallbackColdStart = "cold_start"
	fallbackTopUp     = "top_up"
	fallbackNoInputs  = "no_inputs"
)

// Dependencies are the collaborators an Engine reads from.
type Dependencies struct {
	Catalog Catalog
	Index   SimilarityIndex
	Peers   PeerFinder
	Ratings RatingStore

	// Listener is optional. It is called after every accepted rating.
	Listener RatingListener
}

// Engine combines content-based and collaborative filtering with a
// popularity fallback. It is safe for concurrent use.
type Engine struct {
	config   Config
	logger   zerolog.Logger
	catalog  Catalog
	index    SimilarityIndex
	peers    PeerFinder
	ratings  RatingStore
	listener RatingListener

	// results caches collaborative and hybrid id lists. Keys include the
	// rating store version, so any write invalidates every entry.
	results *cache.LRU[[]int]
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // config passed by value, copied into the engine
func NewEngine(cfg Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("catalog is required")
	case deps.Index == nil:
		return nil, errors.New("similarity index is required")
	case deps.Peers == nil:
		return nil, errors.New("peer finder is required")
	case deps.Ratings == nil:
		return nil, errors.New("rating store is required")
	}

	e := &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		catalog:  deps.Catalog,
		index:    deps.Index,
		peers:    deps.Peers,
		ratings:  deps.Ratings,
		listener: deps.Listener,
	}
	if cfg.Cache.Enabled {
		e.results = cache.New[[]int](cfg.Cache.Capacity, cfg.Cache.TTL)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// log returns the engine logger tagged with the request id from ctx.
func (e *Engine) log(ctx context.Context) *zerolog.Logger {
	l := e.logger
	if id := logging.RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	return &l
}

// clampK caps k at the configured maximum.
func (e *Engine) clampK(k int) int {
	if k > e.config.Limits.MaxK {
		return e.config.Limits.MaxK
	}
	return k
}

// AddRating stores a rating. A *ratings.ValidationError is returned, and
// nothing changes, when the value is outside [1.0, 5.0] or the user id is
// blank. The item id is not checked against the catalog.
func (e *Engine) AddRating(ctx context.Context, userID string, itemID int, value float64) error {
	if err := e.ratings.Add(userID, itemID, value); err != nil {
		reason := "invalid"
		var verr *ratings.ValidationError
		if errors.As(err, &verr) {
			reason = "invalid_" + verr.Field
		}
		metrics.RecordRating(false, reason, 0)
		e.log(ctx).Debug().Err(err).Str("user_id", userID).Int("book_id", itemID).Msg("Rating rejected")
		return err
	}

	metrics.RecordRating(true, "", e.ratings.Len())
	e.log(ctx).Debug().
		Str("user_id", userID).
		Int("book_id", itemID).
		Float64("rating", value).
		Msg("Rating added")

	if e.listener != nil {
		e.listener.RatingAdded(ctx, userID, itemID, value)
	}
	return nil
}

// ContentBased returns up to k books most similar in content to itemID,
// most similar first. Unknown ids yield an empty list.
func (e *Engine) ContentBased(ctx context.Context, itemID, k int) []catalog.Book {
	start := time.Now()
	books := e.resolve(e.contentIDs(itemID, e.clampK(k)))
	metrics.RecordRecommendation(string(StrategyContent), len(books), time.Since(start))
	e.log(ctx).Debug().Int("book_id", itemID).Int("k", k).Int("results", len(books)).Msg("Content-based recommendations")
	return books
}

func (e *Engine) contentIDs(itemID, k int) []int {
	if k <= 0 {
		return []int{}
	}
	scored := e.index.TopSimilar(itemID, k)
	ids := make([]int, 0, len(scored))
	for _, s := range scored {
		ids = append(ids, s.ID)
	}
	return ids
}

// Collaborative returns up to k books rated highly by users whose tastes
// correlate with userID. Users without ratings get Popular(k).
func (e *Engine) Collaborative(ctx context.Context, userID string, k int) []catalog.Book {
	start := time.Now()
	k = e.clampK(k)
	ids := e.cached(ctx, cacheKey(StrategyCollaborative, userID, nil, k, e.ratings.Version()), func() []int {
		return e.collaborativeIDs(ctx, userID, k)
	})
	books := e.resolve(ids)
	metrics.RecordRecommendation(string(StrategyCollaborative), len(books), time.Since(start))
	e.log(ctx).Debug().Str("user_id", userID).Int("k", k).Int("results", len(books)).Msg("Collaborative recommendations")
	return books
}

func (e *Engine) collaborativeIDs(ctx context.Context, userID string, k int) []int {
	if k <= 0 {
		return []int{}
	}
	if !e.ratings.HasRatings(userID) {
		metrics.RecordFallback(fallbackColdStart)
		e.log(ctx).Debug().Str("user_id", userID).Msg("No ratings, using popular books")
		return bookIDs(e.catalog.Popular(k))
	}

	rated := make(map[int]struct{})
	for _, r := range e.ratings.RatingsOf(userID) {
		rated[r.ItemID] = struct{}{}
	}

	ids := make([]int, 0, k)
	seen := make(map[int]struct{}, k)
	for _, peer := range e.peers.SimilarUsers(userID, e.config.SimilarityThreshold, e.config.MinCommonItems) {
		for _, r := range e.ratings.RatingsOf(peer) {
			if r.Value < e.config.HighRatingThreshold {
				continue
			}
			if _, ok := rated[r.ItemID]; ok {
				continue
			}
			if _, ok := seen[r.ItemID]; ok {
				continue
			}
			if _, ok := e.catalog.ItemByID(r.ItemID); !ok {
				continue
			}
			seen[r.ItemID] = struct{}{}
			ids = append(ids, r.ItemID)
			if len(ids) == k {
				return ids
			}
		}
	}
	return ids
}

// Hybrid merges content-based results for req.ItemID with collaborative
// results for req.UserID, each with a budget of K/2, then tops up from the
// popularity list until K distinct books are returned or the catalog runs
// out. Without either input the result is Popular(K).
func (e *Engine) Hybrid(ctx context.Context, req HybridRequest) []catalog.Book {
	start := time.Now()
	k := e.clampK(req.K)
	ids := e.cached(ctx, cacheKey(StrategyHybrid, req.UserID, req.ItemID, k, e.ratings.Version()), func() []int {
		return e.hybridIDs(ctx, req.UserID, req.ItemID, k)
	})
	books := e.resolve(ids)
	metrics.RecordRecommendation(string(StrategyHybrid), len(books), time.Since(start))
	e.log(ctx).Debug().
		Str("user_id", req.UserID).
		Bool("has_book", req.ItemID != nil).
		Int("k", k).
		Int("results", len(books)).
		Msg("Hybrid recommendations")
	return books
}

func (e *Engine) hybridIDs(ctx context.Context, userID string, itemID *int, k int) []int {
	if k <= 0 {
		return []int{}
	}
	if userID == "" && itemID == nil {
		metrics.RecordFallback(fallbackNoInputs)
		return bookIDs(e.catalog.Popular(k))
	}

	half := k / 2
	var candidates []int
	if itemID != nil {
		candidates = append(candidates, e.contentIDs(*itemID, half)...)
	}
	if userID != "" {
		candidates = append(candidates, e.collaborativeIDs(ctx, userID, half)...)
	}

	ids := make([]int, 0, k)
	seen := make(map[int]struct{}, k)
	for _, id := range candidates {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) < k {
		metrics.RecordFallback(fallbackTopUp)
		for _, b := range e.catalog.Popular(e.catalog.Len()) {
			if len(ids) == k {
				break
			}
			if _, ok := seen[b.ID]; ok {
				continue
			}
			seen[b.ID] = struct{}{}
			ids = append(ids, b.ID)
		}
	}

	if len(ids) > k {
		ids = ids[:k]
	}
	return ids
}

// Popular returns the k books with the highest declared rating.
func (e *Engine) Popular(ctx context.Context, k int) []catalog.Book {
	start := time.Now()
	k = e.clampK(k)
	books := []catalog.Book{}
	if k > 0 {
		books = e.catalog.Popular(k)
	}
	metrics.RecordRecommendation(string(StrategyPopular), len(books), time.Since(start))
	e.log(ctx).Debug().Int("k", k).Int("results", len(books)).Msg("Popular books")
	return books
}

// cached returns the ids for key, computing and storing them on a miss.
func (e *Engine) cached(ctx context.Context, key string, compute func() []int) []int {
	if e.results == nil {
		return compute()
	}
	if ids, ok := e.results.Get(key); ok {
		metrics.RecordCacheLookup(true)
		e.log(ctx).Debug().Str("cache_key", key).Msg("Recommendation cache hit")
		return ids
	}
	metrics.RecordCacheLookup(false)
	ids := compute()
	e.results.Add(key, ids)
	return ids
}

func cacheKey(strategy Strategy, userID string, itemID *int, k int, version uint64) string {
	item := "-"
	if itemID != nil {
		item = strconv.Itoa(*itemID)
	}
	return fmt.Sprintf("%s:%q:%s:%d:%d", strategy, userID, item, k, version)
}

// resolve maps ids to books, keeping the given order and skipping ids the
// catalog does not know.
func (e *Engine) resolve(ids []int) []catalog.Book {
	books := make([]catalog.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := e.catalog.ItemByID(id); ok {
			books = append(books, b)
		}
	}
	return books
}

func bookIDs(books []catalog.Book) []int {
	ids := make([]int, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	return ids
}
