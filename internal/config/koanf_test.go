// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Catalog.Path != "" || !cfg.Catalog.SeedRatings {
		t.Errorf("Catalog = %+v, want sample catalog with demo ratings", cfg.Catalog)
	}
	if cfg.Recommend.MaxVocabulary != 5000 {
		t.Errorf("Recommend.MaxVocabulary = %d, want 5000", cfg.Recommend.MaxVocabulary)
	}
	if cfg.Recommend.SimilarityThreshold != 0.3 || cfg.Recommend.MinCommonItems != 2 {
		t.Errorf("peer thresholds = %v/%d, want 0.3/2", cfg.Recommend.SimilarityThreshold, cfg.Recommend.MinCommonItems)
	}
	if cfg.Recommend.HighRatingThreshold != 4.0 {
		t.Errorf("Recommend.HighRatingThreshold = %v, want 4.0", cfg.Recommend.HighRatingThreshold)
	}
	if cfg.Recommend.CacheTTL != 5*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 5m", cfg.Recommend.CacheTTL)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"CATALOG_PATH", "catalog.path"},
		{"SEED_RATINGS", "catalog.seed_ratings"},
		{"RECOMMEND_MAX_K", "recommend.max_k"},
		{"RECOMMEND_CACHE_TTL", "recommend.cache_ttl"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"EVENTS_ENABLED", "events.enabled"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() with missing file = %q, want empty", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_MAX_K", "25")
	t.Setenv("RECOMMEND_CACHE_TTL", "30s")
	t.Setenv("SEED_RATINGS", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.MaxK != 25 {
		t.Errorf("Recommend.MaxK = %d, want 25", cfg.Recommend.MaxK)
	}
	if cfg.Recommend.CacheTTL != 30*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 30s", cfg.Recommend.CacheTTL)
	}
	if cfg.Catalog.SeedRatings {
		t.Error("Catalog.SeedRatings should be false")
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanfConfigFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
  environment: staging
logging:
  level: warn
catalog:
  path: /srv/books.yaml
recommend:
  similarity_threshold: 0.5
  max_k: 50
security:
  cors_origins:
    - https://folio.example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 || cfg.Server.Environment != "staging" {
		t.Errorf("Server = %+v, want port 7000 in staging", cfg.Server)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("env should override file: Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Catalog.Path != "/srv/books.yaml" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Recommend.SimilarityThreshold != 0.5 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Recommend.MaxVocabulary != 5000 {
		t.Errorf("unset values keep defaults: MaxVocabulary = %d", cfg.Recommend.MaxVocabulary)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://folio.example.com"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("HTTP_PORT", "0")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() should reject port 0")
	}
}
