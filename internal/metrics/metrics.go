// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package metrics defines the Prometheus instrumentation for Folio:
// HTTP traffic, recommendation requests and fallbacks, rating writes,
// rating events, the result cache and the content index.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_recommendation_requests_total",
			Help: "Total recommendation requests by strategy",
		},
		[]string{"strategy"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_recommendation_duration_seconds",
			Help:    "Time to compute recommendations by strategy",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"strategy"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_recommendation_results",
			Help:    "Number of books returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"strategy"},
	)

	// RecommendationFallbacks counts popularity fallbacks by reason:
	// cold_start (collaborative, user has no ratings), top_up (hybrid
	// filled from popular), no_inputs (hybrid without user or book).
	RecommendationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_recommendation_fallbacks_total",
			Help: "Popularity fallbacks by reason",
		},
		[]string{"reason"},
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_recommendation_cache_hits_total",
			Help: "Recommendation result cache hits",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_recommendation_cache_misses_total",
			Help: "Recommendation result cache misses",
		},
	)

	// Rating Metrics
	RatingsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_ratings_added_total",
			Help: "Ratings accepted, including overwrites",
		},
	)

	RatingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_ratings_rejected_total",
			Help: "Ratings rejected by reason",
		},
		[]string{"reason"},
	)

	RatingsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_ratings_stored",
			Help: "Distinct (user, book) ratings held in memory",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_events_published_total",
			Help: "Events published by topic",
		},
		[]string{"topic"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_events_consumed_total",
			Help: "Events consumed by topic and outcome",
		},
		[]string{"topic", "outcome"},
	)

	// Catalog Metrics
	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_catalog_books",
			Help: "Books in the catalog",
		},
	)

	ContentVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_content_vocabulary_terms",
			Help: "Terms kept in the content index vocabulary",
		},
	)

	ContentIndexBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_content_index_build_seconds",
			Help: "Duration of the last content index build",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one strategy invocation.
func RecordRecommendation(strategy string, results int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(strategy).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(strategy).Observe(float64(results))
}

// RecordFallback records a popularity fallback.
func RecordFallback(reason string) {
	RecommendationFallbacks.WithLabelValues(reason).Inc()
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendationCacheHits.Inc()
	} else {
		RecommendationCacheMisses.Inc()
	}
}

// RecordRating records the outcome of a rating write. reason is ignored
// when accepted is true.
func RecordRating(accepted bool, reason string, stored int) {
	if !accepted {
		RatingsRejected.WithLabelValues(reason).Inc()
		return
	}
	RatingsAdded.Inc()
	RatingsStored.Set(float64(stored))
}

// RecordEventPublished counts a published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventConsumed counts a consumed event; outcome is "ok" or "invalid".
func RecordEventConsumed(topic, outcome string) {
	EventsConsumed.WithLabelValues(topic, outcome).Inc()
}

// RecordContentIndex records catalog and index sizes after a build.
func RecordContentIndex(books, vocabulary int, duration time.Duration) {
	CatalogBooks.Set(float64(books))
	ContentVocabularySize.Set(float64(vocabulary))
	ContentIndexBuildDuration.Set(duration.Seconds())
}
