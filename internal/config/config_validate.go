// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

var validCatalogExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateEvents()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateCatalog validates the catalog source
func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(c.Catalog.Path))
	if !validCatalogExtensions[ext] {
		return fmt.Errorf("CATALOG_PATH must be a .json, .yaml or .yml file, got %q", c.Catalog.Path)
	}
	return nil
}

// validateRecommend validates recommendation engine bounds
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	switch {
	case r.MaxVocabulary <= 0:
		return fmt.Errorf("RECOMMEND_MAX_VOCABULARY must be positive")
	case r.Workers < 0:
		return fmt.Errorf("RECOMMEND_WORKERS must not be negative")
	case r.SimilarityThreshold < -1 || r.SimilarityThreshold > 1:
		return fmt.Errorf("RECOMMEND_SIMILARITY_THRESHOLD must be between -1 and 1")
	case r.MinCommonItems < 1:
		return fmt.Errorf("RECOMMEND_MIN_COMMON_ITEMS must be at least 1")
	case r.HighRatingThreshold < 1 || r.HighRatingThreshold > 5:
		return fmt.Errorf("RECOMMEND_HIGH_RATING_THRESHOLD must be between 1 and 5")
	case r.DefaultK < 1:
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be at least 1")
	case r.MaxK < r.DefaultK:
		return fmt.Errorf("RECOMMEND_MAX_K (%d) must be >= RECOMMEND_DEFAULT_K (%d)", r.MaxK, r.DefaultK)
	case r.ExplainRatingDelta < 0 || r.ExplainYearDelta < 0:
		return fmt.Errorf("explain tolerances must not be negative")
	case r.CacheEnabled && (r.CacheCapacity < 1 || r.CacheTTL <= 0):
		return fmt.Errorf("RECOMMEND_CACHE_CAPACITY and RECOMMEND_CACHE_TTL must be positive when caching is enabled")
	}
	return nil
}

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	if c.Security.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// minJWTSecretLen matches the HS256 key size.
const minJWTSecretLen = 32

func (c *Config) validateAuth() error {
	switch c.Security.AuthMode {
	case "none":
		return nil
	case "jwt":
		if len(c.Security.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when AUTH_MODE=jwt", minJWTSecretLen)
		}
		if c.Security.TokenTTL <= 0 {
			return fmt.Errorf("JWT_TOKEN_TTL must be positive")
		}
		return nil
	default:
		return fmt.Errorf("AUTH_MODE must be none or jwt, got %q", c.Security.AuthMode)
	}
}

// validateCORS rejects wildcard origins in production.
func (c *Config) validateCORS() error {
	if c.Server.Environment != "production" {
		return nil
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain '*' when ENVIRONMENT=production")
		}
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must not be negative")
	}
	return nil
}
