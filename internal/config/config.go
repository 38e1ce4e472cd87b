// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package config loads Folio's configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (config.yaml, /etc/folio/config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: cfg.Server.Addr()}
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Events    EventsConfig    `koanf:"events"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// CatalogConfig holds the book source settings.
type CatalogConfig struct {
	// Path is a JSON or YAML book file. Empty uses the built-in sample
	// catalog of 20 books.
	Path string `koanf:"path"`

	// SeedRatings loads the demo ratings for user1, user2 and user3 at
	// startup.
	SeedRatings bool `koanf:"seed_ratings"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// MaxVocabulary bounds the TF-IDF vocabulary.
	// Default: 5000
	MaxVocabulary int `koanf:"max_vocabulary"`

	// Workers bounds similarity matrix build parallelism. 0 uses GOMAXPROCS.
	Workers int `koanf:"workers"`

	// SimilarityThreshold is the Pearson similarity a peer must exceed.
	// Default: 0.3
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	// MinCommonItems is the number of shared rated books required to
	// compare two users.
	// Default: 2
	MinCommonItems int `koanf:"min_common_items"`

	// HighRatingThreshold is the minimum peer rating for a candidate.
	// Default: 4.0
	HighRatingThreshold float64 `koanf:"high_rating_threshold"`

	// DefaultK is used when a request omits k.
	DefaultK int `koanf:"default_k"`

	// MaxK caps k on every request.
	MaxK int `koanf:"max_k"`

	ExplainRatingDelta float64 `koanf:"explain_rating_delta"`
	ExplainYearDelta   int     `koanf:"explain_year_delta"`

	// CacheEnabled caches collaborative and hybrid results until the next
	// rating write or CacheTTL, whichever comes first.
	CacheEnabled  bool          `koanf:"cache_enabled"`
	CacheCapacity int           `koanf:"cache_capacity"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// AuthMode is none or jwt. With jwt, rating writes need a bearer token
	// whose subject is the rating user.
	AuthMode  string        `koanf:"auth_mode"`
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// EventsConfig holds the in-process rating event stream settings.
type EventsConfig struct {
	// Enabled publishes a message for every accepted rating.
	Enabled bool `koanf:"enabled"`

	// BufferSize is the per-subscriber output buffer.
	BufferSize int64 `koanf:"buffer_size"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
