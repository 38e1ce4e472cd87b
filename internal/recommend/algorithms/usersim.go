// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"math"

	"github.com/tomtom215/folio/internal/ratings"
)

// Defaults for SimilarUsers.
const (
	DefaultSimilarityThreshold = 0.3
	DefaultMinCommonItems      = 2
)

// RatingSnapshotter provides a consistent view of all ratings.
type RatingSnapshotter interface {
	Snapshot() []ratings.UserRatings
}

// UserSimilarity finds peers of a user by rating correlation. Nothing is
// cached; every call reads a fresh snapshot so new ratings are visible
// immediately.
type UserSimilarity struct {
	BaseAlgorithm
	source RatingSnapshotter
}

// NewUserSimilarity creates a UserSimilarity over source.
func NewUserSimilarity(source RatingSnapshotter) *UserSimilarity {
	return &UserSimilarity{
		BaseAlgorithm: NewBaseAlgorithm("user_pearson"),
		source:        source,
	}
}

// SimilarUsers returns, in rating-store user order, every other user who
// shares at least minCommon rated books with userID and whose Pearson
// similarity over those books is strictly greater than threshold.
// A user without ratings has no peers.
func (u *UserSimilarity) SimilarUsers(userID string, threshold float64, minCommon int) []string {
	snapshot := u.source.Snapshot()

	var target []ratings.Rating
	for i := range snapshot {
		if snapshot[i].UserID == userID {
			target = snapshot[i].Ratings
			break
		}
	}
	if len(target) == 0 {
		return []string{}
	}

	peers := []string{}
	for i := range snapshot {
		other := &snapshot[i]
		if other.UserID == userID {
			continue
		}
		a, b := commonRatings(target, other.Ratings)
		if len(a) < minCommon || len(a) == 0 {
			continue
		}
		if Pearson(a, b) > threshold {
			peers = append(peers, other.UserID)
		}
	}
	return peers
}

// Similarity returns the Pearson similarity of two users over their common
// books, and the number of common books.
func (u *UserSimilarity) Similarity(userA, userB string) (float64, int) {
	var ra, rb []ratings.Rating
	for _, ur := range u.source.Snapshot() {
		switch ur.UserID {
		case userA:
			ra = ur.Ratings
		case userB:
			rb = ur.Ratings
		}
	}
	a, b := commonRatings(ra, rb)
	return Pearson(a, b), len(a)
}

// commonRatings aligns the values of books rated by both users, in the
// order target rated them.
func commonRatings(target, other []ratings.Rating) (a, b []float64) {
	if len(target) == 0 || len(other) == 0 {
		return nil, nil
	}
	otherValues := make(map[int]float64, len(other))
	for _, r := range other {
		otherValues[r.ItemID] = r.Value
	}
	for _, r := range target {
		if v, ok := otherValues[r.ItemID]; ok {
			a = append(a, r.Value)
			b = append(b, v)
		}
	}
	return a, b
}

// Pearson computes the correlation of two aligned rating vectors:
//
//	num = Σab - ΣaΣb/n
//	den = sqrt((Σa² - (Σa)²/n) * (Σb² - (Σb)²/n))
//
// A zero denominator (either side has no variance) or empty input yields 0.
func Pearson(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}

	var sumA, sumB, sqA, sqB, prod float64
	for i := 0; i < n; i++ {
		sumA += a[i]
		sumB += b[i]
		sqA += a[i] * a[i]
		sqB += b[i] * b[i]
		prod += a[i] * b[i]
	}

	nf := float64(n)
	numerator := prod - (sumA*sumB)/nf
	denominator := math.Sqrt((sqA - sumA*sumA/nf) * (sqB - sumB*sumB/nf))
	if denominator == 0 || math.IsNaN(denominator) {
		return 0
	}
	return numerator / denominator
}
