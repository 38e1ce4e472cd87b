// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package algorithms implements the similarity components behind the
// recommendation engine.
//
//   - ContentIndex: TF-IDF vectors over book text and a dense cosine
//     similarity matrix, built once per catalog.
//   - UserSimilarity: Pearson correlation between users over their
//     commonly rated books, computed on demand from the rating store.
//
// # Thread Safety
//
// Both types are safe for concurrent use. ContentIndex takes an exclusive
// lock only while (re)building; queries share a read lock.
package algorithms

import (
	"sync"
	"time"
)

// BaseAlgorithm tracks build state shared by the algorithms.
type BaseAlgorithm struct {
	name    string
	built   bool
	version int
	builtAt time.Time
	mu      sync.RWMutex
}

// NewBaseAlgorithm creates a base with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{name: name}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// IsBuilt reports whether a build has completed.
func (b *BaseAlgorithm) IsBuilt() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.built
}

// Version increments on each completed build.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// BuiltAt returns when the last build completed.
func (b *BaseAlgorithm) BuiltAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.builtAt
}

// markBuilt must be called with mu held for writing.
func (b *BaseAlgorithm) markBuilt() {
	b.built = true
	b.version++
	b.builtAt = time.Now()
}
