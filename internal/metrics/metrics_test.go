// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Metrics are process globals, so tests assert on deltas and use labels no
// other test touches.

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues("test_strategy"))
	RecordRecommendation("test_strategy", 5, 2*time.Millisecond)
	RecordRecommendation("test_strategy", 0, time.Millisecond)

	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues("test_strategy")) - before; got != 2 {
		t.Errorf("requests delta = %v, want 2", got)
	}
}

func TestRecordFallback(t *testing.T) {
	before := testutil.ToFloat64(RecommendationFallbacks.WithLabelValues("test_reason"))
	RecordFallback("test_reason")
	if got := testutil.ToFloat64(RecommendationFallbacks.WithLabelValues("test_reason")) - before; got != 1 {
		t.Errorf("fallback delta = %v, want 1", got)
	}
}

func TestRecordRating(t *testing.T) {
	added := testutil.ToFloat64(RatingsAdded)
	rejected := testutil.ToFloat64(RatingsRejected.WithLabelValues("test_out_of_range"))

	RecordRating(true, "", 42)
	RecordRating(false, "test_out_of_range", 0)

	if got := testutil.ToFloat64(RatingsAdded) - added; got != 1 {
		t.Errorf("added delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RatingsRejected.WithLabelValues("test_out_of_range")) - rejected; got != 1 {
		t.Errorf("rejected delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RatingsStored); got != 42 {
		t.Errorf("stored = %v, want 42", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(RecommendationCacheHits)
	misses := testutil.ToFloat64(RecommendationCacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(RecommendationCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendationCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200"))
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200")) - before; got != 1 {
		t.Errorf("api requests delta = %v, want 1", got)
	}

	TrackActiveRequest(true)
	TrackActiveRequest(false)
}

func TestRecordContentIndex(t *testing.T) {
	RecordContentIndex(20, 150, 3*time.Millisecond)
	if got := testutil.ToFloat64(ContentVocabularySize); got != 150 {
		t.Errorf("vocabulary = %v, want 150", got)
	}
	if got := testutil.ToFloat64(CatalogBooks); got != 20 {
		t.Errorf("books = %v, want 20", got)
	}
}
