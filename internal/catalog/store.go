// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// SearchField selects which fields Search matches against.
type SearchField string

const (
	// SearchAll matches title, author or genre.
	SearchAll SearchField = "all"
	// SearchTitle matches the title only.
	SearchTitle SearchField = "title"
	// SearchAuthor matches the author only.
	SearchAuthor SearchField = "author"
	// SearchGenre matches the genre only.
	SearchGenre SearchField = "genre"
	// SearchDescription matches the description only. It is never part of SearchAll.
	SearchDescription SearchField = "description"
)

// ParseSearchField maps a user supplied field name. Unknown or empty names
// yield SearchAll and ok=false.
func ParseSearchField(s string) (field SearchField, ok bool) {
	switch f := SearchField(strings.ToLower(strings.TrimSpace(s))); f {
	case SearchAll, SearchTitle, SearchAuthor, SearchGenre, SearchDescription:
		return f, true
	default:
		return SearchAll, false
	}
}

// Store holds the catalog in insertion order. It is immutable after
// NewStore returns and safe for concurrent reads without locking.
type Store struct {
	books   []Book
	byID    map[int]int
	popular []int
	recent  []int
}

// NewStore validates books and builds the id index and the precomputed
// popularity and recency orders. Input order is preserved as catalog order.
func NewStore(books []Book) (*Store, error) {
	s := &Store{
		books: make([]Book, len(books)),
		byID:  make(map[int]int, len(books)),
	}
	copy(s.books, books)

	for i := range s.books {
		b := &s.books[i]
		if err := b.validate(); err != nil {
			return nil, err
		}
		if prev, dup := s.byID[b.ID]; dup {
			return nil, fmt.Errorf("%w: %d at positions %d and %d", ErrDuplicateID, b.ID, prev, i)
		}
		s.byID[b.ID] = i
	}

	s.popular = s.rankBy(func(a, b *Book) bool { return a.Rating > b.Rating })
	s.recent = s.rankBy(func(a, b *Book) bool { return a.Year > b.Year })
	return s, nil
}

// rankBy returns catalog positions ordered by less; ties keep catalog order.
func (s *Store) rankBy(less func(a, b *Book) bool) []int {
	order := make([]int, len(s.books))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return less(&s.books[order[i]], &s.books[order[j]])
	})
	return order
}

// Len returns the number of books.
func (s *Store) Len() int {
	return len(s.books)
}

// All returns a copy of the catalog in catalog order.
func (s *Store) All() []Book {
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

// IndexOf returns the catalog position of id.
func (s *Store) IndexOf(id int) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// At returns the book at catalog position i. It panics if i is out of range.
func (s *Store) At(i int) Book {
	return s.books[i]
}

// ItemByID looks up a single book.
func (s *Store) ItemByID(id int) (Book, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Book{}, false
	}
	return s.books[i], true
}

// ItemsByIDs returns the known books among ids, in catalog order. Unknown
// and repeated ids are ignored.
func (s *Store) ItemsByIDs(ids []int) []Book {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return s.filter(len(s.books), func(b *Book) bool {
		_, ok := want[b.ID]
		return ok
	})
}

// Popular returns the k books with the highest declared rating, descending.
func (s *Store) Popular(k int) []Book {
	return s.pick(s.popular, k)
}

// Recent returns the k most recently published books, newest first.
func (s *Store) Recent(k int) []Book {
	return s.pick(s.recent, k)
}

func (s *Store) pick(order []int, k int) []Book {
	if k <= 0 {
		return []Book{}
	}
	if k > len(order) {
		k = len(order)
	}
	out := make([]Book, k)
	for i := 0; i < k; i++ {
		out[i] = s.books[order[i]]
	}
	return out
}

// ByGenre returns up to limit books whose genre contains genre, ignoring case.
func (s *Store) ByGenre(genre string, limit int) []Book {
	needle := strings.ToLower(genre)
	return s.filter(limit, func(b *Book) bool {
		return strings.Contains(strings.ToLower(b.Genre), needle)
	})
}

// ByAuthor returns up to limit books whose author contains author, ignoring case.
func (s *Store) ByAuthor(author string, limit int) []Book {
	needle := strings.ToLower(author)
	return s.filter(limit, func(b *Book) bool {
		return strings.Contains(strings.ToLower(b.Author), needle)
	})
}

// Search does a case-insensitive substring match of query against the
// fields selected by field. Results are in catalog order.
func (s *Store) Search(query string, field SearchField) []Book {
	needle := strings.ToLower(query)
	has := func(v string) bool { return strings.Contains(strings.ToLower(v), needle) }

	return s.filter(len(s.books), func(b *Book) bool {
		switch field {
		case SearchTitle:
			return has(b.Title)
		case SearchAuthor:
			return has(b.Author)
		case SearchGenre:
			return has(b.Genre)
		case SearchDescription:
			return has(b.Description)
		default:
			return has(b.Title) || has(b.Author) || has(b.Genre)
		}
	})
}

func (s *Store) filter(limit int, match func(*Book) bool) []Book {
	out := []Book{}
	if limit <= 0 {
		return out
	}
	for i := range s.books {
		if match(&s.books[i]) {
			out = append(out, s.books[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
