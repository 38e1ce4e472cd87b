// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Catalog errors. Both are returned wrapped; use errors.Is.
var (
	ErrDuplicateID = errors.New("duplicate book id")
	ErrInvalidBook = errors.New("invalid book")
)

// Book is an immutable catalog record.
type Book struct {
	// ID is the unique catalog key used by every other component.
	ID int `json:"id" yaml:"id"`

	// Title is the book title.
	Title string `json:"title" yaml:"title"`

	// Author is the author's display name.
	Author string `json:"author" yaml:"author"`

	// Genre is a single free-form genre label.
	Genre string `json:"genre" yaml:"genre"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Description is the blurb used for content similarity.
	Description string `json:"description" yaml:"description"`

	// Rating is the declared average rating (0-5). Drives popularity order.
	Rating float64 `json:"rating" yaml:"rating"`

	// Pages is the page count.
	Pages int `json:"pages" yaml:"pages"`

	// Language is the language of the edition.
	Language string `json:"language" yaml:"language"`
}

// ContentText is the text the content index is built from.
func (b *Book) ContentText() string {
	return b.Description + " " + b.Genre + " " + b.Author
}

func (b *Book) validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidBook, b.ID)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: book %d has no title", ErrInvalidBook, b.ID)
	}
	if math.IsNaN(b.Rating) || b.Rating < 0 || b.Rating > 5 {
		return fmt.Errorf("%w: book %d rating %v outside [0,5]", ErrInvalidBook, b.ID, b.Rating)
	}
	if b.Pages < 0 {
		return fmt.Errorf("%w: book %d has negative page count", ErrInvalidBook, b.ID)
	}
	return nil
}
