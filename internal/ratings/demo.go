// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package ratings

import "fmt"

// demoRatings reference books in the built-in sample catalog.
var demoRatings = []struct {
	user   string
	values [][2]float64
}{
	{"user1", [][2]float64{{1, 5.0}, {2, 4.0}, {6, 5.0}, {7, 4.5}, {10, 4.0}}},
	{"user2", [][2]float64{{2, 5.0}, {4, 4.5}, {5, 4.0}, {8, 3.5}, {16, 4.0}}},
	{"user3", [][2]float64{{3, 4.0}, {6, 5.0}, {7, 5.0}, {12, 3.5}, {19, 4.5}}},
}

// SeedDemo adds the demo ratings for user1, user2 and user3. Existing
// ratings for the same pairs are overwritten.
func SeedDemo(s *Store) (int, error) {
	n := 0
	for _, u := range demoRatings {
		for _, v := range u.values {
			if err := s.Add(u.user, int(v[0]), v[1]); err != nil {
				return n, fmt.Errorf("seed %s: %w", u.user, err)
			}
			n++
		}
	}
	return n, nil
}
