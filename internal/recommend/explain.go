// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/folio/internal/catalog"
)

// Explanation reasons without arguments.
const (
	ReasonSimilarRating     = "Similar rating"
	ReasonSimilarTimePeriod = "Similar time period"
	ReasonContentSimilarity = "Content similarity"
)

// Explain lists, for each recommended book, what it shares with the base
// book: genre, author, a declared rating within RatingDelta and a year
// within YearDelta, in that order. Books sharing none of these get
// "Content similarity". An unknown base id yields an empty list.
func (e *Engine) Explain(baseID int, recommended []catalog.Book) []Explanation {
	base, ok := e.catalog.ItemByID(baseID)
	if !ok {
		return []Explanation{}
	}

	out := make([]Explanation, 0, len(recommended))
	for i := range recommended {
		out = append(out, Explanation{
			Book:    recommended[i],
			Reasons: e.reasons(&base, &recommended[i]),
		})
	}
	return out
}

func (e *Engine) reasons(base, rec *catalog.Book) []string {
	var reasons []string
	if base.Genre == rec.Genre {
		reasons = append(reasons, fmt.Sprintf("Same genre (%s)", base.Genre))
	}
	if base.Author == rec.Author {
		reasons = append(reasons, fmt.Sprintf("Same author (%s)", base.Author))
	}
	// Declared ratings carry one decimal; the epsilon keeps 4.4 vs 4.1
	// inside a 0.3 tolerance despite float rounding.
	if math.Abs(base.Rating-rec.Rating) <= e.config.Explain.RatingDelta+1e-9 {
		reasons = append(reasons, ReasonSimilarRating)
	}
	if absInt(base.Year-rec.Year) <= e.config.Explain.YearDelta {
		reasons = append(reasons, ReasonSimilarTimePeriod)
	}
	if len(reasons) == 0 {
		reasons = []string{ReasonContentSimilarity}
	}
	return reasons
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
