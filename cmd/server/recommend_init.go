// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/ratings"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
)

// RecommendComponents holds everything the API and supervisor need.
type RecommendComponents struct {
	Catalog  *catalog.Store
	Index    *algorithms.ContentIndex
	Ratings  *ratings.Store
	Engine   *recommend.Engine
	Bus      *events.Bus      // nil when events are disabled
	Activity *events.Activity // nil when events are disabled
}

// recommendConfig maps the flat koanf section onto the engine config.
func recommendConfig(cfg *config.Config) recommend.Config {
	rc := cfg.Recommend
	return recommend.Config{
		MaxVocabulary:       rc.MaxVocabulary,
		SimilarityThreshold: rc.SimilarityThreshold,
		MinCommonItems:      rc.MinCommonItems,
		HighRatingThreshold: rc.HighRatingThreshold,
		Limits: recommend.LimitsConfig{
			DefaultK: rc.DefaultK,
			MaxK:     rc.MaxK,
		},
		Explain: recommend.ExplainConfig{
			RatingDelta: rc.ExplainRatingDelta,
			YearDelta:   rc.ExplainYearDelta,
		},
		Cache: recommend.CacheConfig{
			Enabled:  rc.CacheEnabled,
			Capacity: rc.CacheCapacity,
			TTL:      rc.CacheTTL,
		},
	}
}

// initRecommend loads the catalog, builds the content index and wires the
// engine. The event bus is created but not started; the supervisor runs it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initRecommend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info().
		Int("books", store.Len()).
		Str("source", catalogSource(cfg.Catalog.Path)).
		Msg("Catalog loaded")

	index := algorithms.NewContentIndex(algorithms.ContentIndexConfig{
		MaxVocabulary: cfg.Recommend.MaxVocabulary,
		Workers:       cfg.Recommend.Workers,
	}, logger)
	start := time.Now()
	if err := index.Build(ctx, store.All()); err != nil {
		return nil, err
	}
	metrics.RecordContentIndex(index.Len(), index.VocabularySize(), time.Since(start))

	rs := ratings.NewStore()
	if cfg.Catalog.SeedRatings {
		n, err := ratings.SeedDemo(rs)
		if err != nil {
			return nil, err
		}
		logger.Info().Int("ratings", n).Msg("Demo ratings seeded")
	}

	c := &RecommendComponents{Catalog: store, Index: index, Ratings: rs}

	deps := recommend.Dependencies{
		Catalog: store,
		Index:   index,
		Peers:   algorithms.NewUserSimilarity(rs),
		Ratings: rs,
	}
	if cfg.Events.Enabled {
		c.Bus = events.NewBus(events.Config{BufferSize: cfg.Events.BufferSize}, logger)
		c.Activity = events.NewActivity(logger)
		c.Bus.Handle("activity", c.Activity.Handle)
		deps.Listener = c.Bus
	}

	c.Engine, err = recommend.NewEngine(recommendConfig(cfg), deps, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	return c, nil
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
