// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed books.json
var sampleBooks []byte

// SampleBooks returns the built-in 20 book catalog.
func SampleBooks() ([]Book, error) {
	return decodeJSON(sampleBooks)
}

// Load returns a Store built from path, or from the built-in sample catalog
// when path is empty.
func Load(path string) (*Store, error) {
	var (
		books []Book
		err   error
	)
	if path == "" {
		books, err = SampleBooks()
	} else {
		books, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return NewStore(books)
}

// LoadFile reads a catalog file. The format is chosen by extension:
// .json, or .yaml/.yml.
func LoadFile(path string) ([]Book, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		books, err := decodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		return books, nil
	case ".yaml", ".yml":
		var books []Book
		if err := yaml.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		return books, nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
}

func decodeJSON(data []byte) ([]Book, error) {
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	return books, nil
}
