// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend implements the book recommendation engine.
//
// # Strategies
//
//   - Content-based: books whose TF-IDF text vectors are closest to a
//     given book.
//   - Collaborative: books rated >= 4.0 by users whose ratings correlate
//     with the target user. Users without ratings get the most popular
//     books instead (cold start).
//   - Hybrid: content results for the book (k/2) followed by collaborative
//     results for the user (k/2), deduplicated, then topped up from the
//     popularity list until k books are returned.
//
// Unknown books and users are not errors. They produce empty results or
// the popularity fallback. The only error the engine returns from a write
// is a rating validation error.
//
// # Determinism
//
// Given the same catalog and the same sequence of ratings every operation
// returns identical output. Ties in similarity keep catalog order, and
// collaborative candidates are taken in the order peers were first seen by
// the rating store, then in each peer's rating order.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), recommend.Dependencies{
//	    Catalog: books,
//	    Index:   contentIndex,
//	    Peers:   algorithms.NewUserSimilarity(store),
//	    Ratings: store,
//	}, logger)
//
//	recs := engine.Hybrid(ctx, recommend.HybridRequest{UserID: "user1", K: 5})
//
// # Thread Safety
//
// The engine is safe for concurrent use. The rating store serializes
// writes; everything else the engine reads is immutable after startup.
package recommend
