// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MaxVocabulary bounds the content index vocabulary.
	MaxVocabulary int `json:"max_vocabulary"`

	// SimilarityThreshold is the Pearson similarity a peer must exceed.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// MinCommonItems is how many books two users must both have rated
	// before their similarity is considered.
	MinCommonItems int `json:"min_common_items"`

	// HighRatingThreshold is the minimum peer rating for a collaborative
	// candidate.
	HighRatingThreshold float64 `json:"high_rating_threshold"`

	// Limits contains request size limits.
	Limits LimitsConfig `json:"limits"`

	// Explain contains explanation tolerances.
	Explain ExplainConfig `json:"explain"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains request size limits.
type LimitsConfig struct {
	// DefaultK is used by callers when no k is supplied.
	DefaultK int `json:"default_k"`

	// MaxK caps k for every strategy.
	MaxK int `json:"max_k"`
}

// ExplainConfig contains tolerances for explanation reasons.
type ExplainConfig struct {
	// RatingDelta is the largest declared rating difference still
	// reported as "Similar rating".
	RatingDelta float64 `json:"rating_delta"`

	// YearDelta is the largest publication year difference still
	// reported as "Similar time period".
	YearDelta int `json:"year_delta"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled turns on caching of collaborative and hybrid results.
	Enabled bool `json:"enabled"`

	// Capacity is the maximum number of cached results.
	Capacity int `json:"capacity"`

	// TTL is how long a result stays cached. Entries are also keyed by
	// the rating store version, so a new rating never serves stale data.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxVocabulary:       5000,
		SimilarityThreshold: 0.3,
		MinCommonItems:      2,
		HighRatingThreshold: 4.0,
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     100,
		},
		Explain: ExplainConfig{
			RatingDelta: 0.3,
			YearDelta:   20,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 1024,
			TTL:      5 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver mirrors DefaultConfig usage
func (c Config) Validate() error {
	if c.MaxVocabulary <= 0 {
		return fmt.Errorf("max_vocabulary must be positive, got %d", c.MaxVocabulary)
	}
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [-1, 1], got %v", c.SimilarityThreshold)
	}
	if c.MinCommonItems < 1 {
		return fmt.Errorf("min_common_items must be at least 1, got %d", c.MinCommonItems)
	}
	if c.HighRatingThreshold < 1 || c.HighRatingThreshold > 5 {
		return fmt.Errorf("high_rating_threshold must be in [1, 5], got %v", c.HighRatingThreshold)
	}
	if c.Limits.DefaultK <= 0 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k (%d) must be >= limits.default_k (%d)", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Explain.RatingDelta < 0 {
		return fmt.Errorf("explain.rating_delta must be non-negative, got %v", c.Explain.RatingDelta)
	}
	if c.Explain.YearDelta < 0 {
		return fmt.Errorf("explain.year_delta must be non-negative, got %d", c.Explain.YearDelta)
	}
	if c.Cache.Enabled {
		if c.Cache.Capacity <= 0 {
			return fmt.Errorf("cache.capacity must be positive when caching is enabled, got %d", c.Cache.Capacity)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
		}
	}
	return nil
}
