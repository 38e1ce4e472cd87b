// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxVocabulary bounds the TF-IDF vocabulary.
const DefaultMaxVocabulary = 5000

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases text, splits it into word tokens of at least two
// characters and drops stop words. Order and duplicates are preserved.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if !IsStopWord(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// SparseVector holds non-zero weights keyed by term index. Indices are
// strictly increasing.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot is the inner product of two sparse vectors (merge join on indices).
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm is the Euclidean length.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// TFIDF is a fitted term weighting: raw term counts times smoothed inverse
// document frequency, idf(t) = ln((1+n)/(1+df(t))) + 1, with each document
// vector scaled to unit length.
type TFIDF struct {
	// Vocabulary lists kept terms in index order (alphabetical).
	Vocabulary []string
	// IDF holds the weight for each vocabulary index.
	IDF []float64

	index map[string]int
}

// FitTransform fits the vocabulary on docs and returns one vector per doc.
// Only the maxVocabulary terms with the highest corpus frequency are kept;
// ties go to the alphabetically smaller term. maxVocabulary <= 0 means
// DefaultMaxVocabulary.
func FitTransform(docs []string, maxVocabulary int) (*TFIDF, []SparseVector) {
	if maxVocabulary <= 0 {
		maxVocabulary = DefaultMaxVocabulary
	}

	tokens := make([][]string, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for d, doc := range docs {
		tokens[d] = Tokenize(doc)
		seen := make(map[string]struct{}, len(tokens[d]))
		for _, tok := range tokens[d] {
			corpusFreq[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	model := &TFIDF{
		Vocabulary: terms,
		IDF:        make([]float64, len(terms)),
		index:      make(map[string]int, len(terms)),
	}
	for i, term := range terms {
		model.index[term] = i
		model.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([]SparseVector, len(docs))
	for d := range tokens {
		vectors[d] = model.vectorize(tokens[d])
	}
	return model, vectors
}

// Transform weights a new document with the fitted vocabulary.
func (m *TFIDF) Transform(doc string) SparseVector {
	return m.vectorize(Tokenize(doc))
}

func (m *TFIDF) vectorize(tokens []string) SparseVector {
	counts := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := m.index[tok]; ok {
			counts[idx]++
		}
	}

	v := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)
	for _, idx := range v.Indices {
		v.Values = append(v.Values, counts[idx]*m.IDF[idx])
	}

	if norm := v.Norm(); norm > 0 {
		for i := range v.Values {
			v.Values[i] /= norm
		}
	}
	return v
}
