// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend_test

import (
	"reflect"
	"testing"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/recommend"
)

func TestExplain(t *testing.T) {
	t.Parallel()

	f := sampleFixture(t)
	book := func(id int) catalog.Book {
		b, ok := f.catalog.ItemByID(id)
		if !ok {
			t.Fatalf("book %d missing", id)
		}
		return b
	}

	tests := []struct {
		name string
		base int
		rec  int
		want []string
	}{
		// 6 and 7: both Fantasy, 4.5 vs 4.4, 1954 vs 1997.
		{"genre and rating", 6, 7, []string{"Same genre (Fantasy)", recommend.ReasonSimilarRating}},
		// 4.5 vs 4.2 sits exactly on the tolerance.
		{"rating and period", 6, 2, []string{recommend.ReasonSimilarRating, recommend.ReasonSimilarTimePeriod}},
		// 4.4 vs 4.1 is 0.3000000000000007 in float64. A bare <= 0.3 check
		// would fall back to content similarity; the epsilon counts it as a
		// similar rating. 1965 vs 2005 is outside the period.
		{"rating at tolerance after float rounding", 4, 8, []string{recommend.ReasonSimilarRating}},
		// 4.5 vs 3.9, 1954 vs 1925.
		{"nothing in common", 6, 12, []string{recommend.ReasonContentSimilarity}},
		{"same book", 4, 4, []string{"Same genre (Science Fiction)", "Same author (Frank Herbert)", recommend.ReasonSimilarRating, recommend.ReasonSimilarTimePeriod}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := f.engine.Explain(tt.base, []catalog.Book{book(tt.rec)})
			if len(got) != 1 {
				t.Fatalf("Explain returned %d entries, want 1", len(got))
			}
			if got[0].Book.ID != tt.rec {
				t.Errorf("explained book = %d, want %d", got[0].Book.ID, tt.rec)
			}
			if !reflect.DeepEqual(got[0].Reasons, tt.want) {
				t.Errorf("reasons = %q, want %q", got[0].Reasons, tt.want)
			}
		})
	}
}

func TestExplainKeepsOrderAndUnknownBase(t *testing.T) {
	t.Parallel()

	f := sampleFixture(t)
	recs := f.catalog.Popular(4)

	got := f.engine.Explain(1, recs)
	if len(got) != len(recs) {
		t.Fatalf("Explain returned %d entries, want %d", len(got), len(recs))
	}
	for i := range recs {
		if got[i].Book.ID != recs[i].ID {
			t.Errorf("entry %d is book %d, want %d", i, got[i].Book.ID, recs[i].ID)
		}
		if len(got[i].Reasons) == 0 {
			t.Errorf("entry %d has no reasons", i)
		}
	}

	if got := f.engine.Explain(999, recs); got == nil || len(got) != 0 {
		t.Errorf("Explain(999) = %v, want empty", got)
	}
}
