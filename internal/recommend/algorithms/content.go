// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/recommend"
)

// ContentIndex recommends books with similar text. Each book is represented
// by the TF-IDF vector of description + genre + author, and S[i][j] is the
// cosine similarity of books i and j in catalog order.
//
// The matrix is symmetric with a unit diagonal and values in [0, 1]. A book
// whose text has no vocabulary terms still gets S[i][i] = 1 and zero
// similarity to everything else.
type ContentIndex struct {
	BaseAlgorithm

	maxVocabulary int
	workers       int
	logger        zerolog.Logger

	ids    []int
	rows   map[int]int
	model  *TFIDF
	matrix [][]float64
}

// ContentIndexConfig configures a ContentIndex.
type ContentIndexConfig struct {
	// MaxVocabulary bounds the number of terms. Default 5000.
	MaxVocabulary int

	// Workers bounds matrix build parallelism. Default GOMAXPROCS.
	Workers int
}

// NewContentIndex creates an empty index. Call Build before querying.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewContentIndex(cfg ContentIndexConfig, logger zerolog.Logger) *ContentIndex {
	if cfg.MaxVocabulary <= 0 {
		cfg.MaxVocabulary = DefaultMaxVocabulary
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &ContentIndex{
		BaseAlgorithm: NewBaseAlgorithm("content"),
		maxVocabulary: cfg.MaxVocabulary,
		workers:       cfg.Workers,
		logger:        logger.With().Str("algorithm", "content").Logger(),
		rows:          map[int]int{},
	}
}

// Build fits the vocabulary over books and computes the full similarity
// matrix. Books must have unique ids; their order defines tie-breaking.
// A failed or cancelled build leaves the previous index in place.
func (c *ContentIndex) Build(ctx context.Context, books []catalog.Book) error {
	start := time.Now()

	ids := make([]int, len(books))
	rows := make(map[int]int, len(books))
	docs := make([]string, len(books))
	for i := range books {
		if _, dup := rows[books[i].ID]; dup {
			return fmt.Errorf("build content index: %w: %d", catalog.ErrDuplicateID, books[i].ID)
		}
		ids[i] = books[i].ID
		rows[books[i].ID] = i
		docs[i] = books[i].ContentText()
	}

	model, vectors := FitTransform(docs, c.maxVocabulary)

	matrix := make([][]float64, len(vectors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range vectors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := make([]float64, len(vectors))
			for j := range vectors {
				if i == j {
					row[j] = 1.0
					continue
				}
				row[j] = clampUnit(vectors[i].Dot(vectors[j]))
			}
			matrix[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("build content index: %w", err)
	}

	c.mu.Lock()
	c.ids = ids
	c.rows = rows
	c.model = model
	c.matrix = matrix
	c.markBuilt()
	c.mu.Unlock()

	c.logger.Info().
		Int("books", len(books)).
		Int("vocabulary", len(model.Vocabulary)).
		Dur("duration", time.Since(start)).
		Msg("Content index built")
	return nil
}

// clampUnit guards against rounding drift pushing a cosine outside [0, 1].
func clampUnit(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// TopSimilar returns up to k other books ranked by descending similarity to
// itemID. Equal scores keep catalog order. Unknown ids and k <= 0 yield an
// empty result.
func (c *ContentIndex) TopSimilar(itemID, k int) []recommend.ScoredID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row, ok := c.rows[itemID]
	if !ok || k <= 0 {
		return []recommend.ScoredID{}
	}

	scores := c.matrix[row]
	candidates := make([]int, 0, len(scores)-1)
	for j := range scores {
		if j != row {
			candidates = append(candidates, j)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]recommend.ScoredID, k)
	for i := 0; i < k; i++ {
		out[i] = recommend.ScoredID{ID: c.ids[candidates[i]], Score: scores[candidates[i]]}
	}
	return out
}

// Similarity returns S for two book ids.
func (c *ContentIndex) Similarity(a, b int) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.rows[a]
	if !ok {
		return 0, false
	}
	j, ok := c.rows[b]
	if !ok {
		return 0, false
	}
	return c.matrix[i][j], true
}

// Matrix returns a copy of the similarity matrix and the book id of each row.
func (c *ContentIndex) Matrix() ([][]float64, []int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := make([][]float64, len(c.matrix))
	for i := range c.matrix {
		m[i] = append([]float64(nil), c.matrix[i]...)
	}
	return m, append([]int(nil), c.ids...)
}

// VocabularySize returns the number of kept terms.
func (c *ContentIndex) VocabularySize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.model == nil {
		return 0
	}
	return len(c.model.Vocabulary)
}

// Len returns the number of indexed books.
func (c *ContentIndex) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}
