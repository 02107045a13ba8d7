// Package ai wraps the pretrained artifacts produced by the offline Python
// training run: the TF-IDF vectorizer vocabulary, the logistic classifier
// weights and the K-Means cluster centroids. Nothing here learns at serving
// time; every component is read-only after load and safe for concurrent use.
package ai

import (
	"math"
	"regexp"
	"strings"
)

// wordToken mirrors the training tokenizer: word characters only, two or more.
var wordToken = regexp.MustCompile(`\b\w\w+\b`)

// SparseVector is a fixed-dimension sparse feature vector in TF-IDF space.
// Dim is the logical dimension; Values only holds the non-zero entries.
type SparseVector struct {
	Dim    int
	Values map[int]float64
}

// Dot returns the inner product with another sparse vector.
func (v SparseVector) Dot(other SparseVector) float64 {
	a, b := v, other
	if len(b.Values) < len(a.Values) {
		a, b = b, a
	}
	var sum float64
	for idx, val := range a.Values {
		sum += val * b.Values[idx]
	}
	return sum
}

// Norm returns the Euclidean norm.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, val := range v.Values {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either vector is zero.
func CosineSimilarity(a, b SparseVector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return a.Dot(b) / (normA * normB)
}

// Vectorizer maps canonical text to TF-IDF features over a vocabulary fixed
// at training time (unigrams and bigrams, min document frequency 2).
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// NewVectorizer builds a vectorizer from an exported vocabulary and IDF
// weights. The vocabulary maps terms (unigrams or space-joined bigrams) to
// column indices inside the IDF vector.
func NewVectorizer(vocabulary map[string]int, idf []float64) *Vectorizer {
	return &Vectorizer{vocabulary: vocabulary, idf: idf}
}

// Dim returns the fixed feature dimension.
func (v *Vectorizer) Dim() int {
	return len(v.idf)
}

// Transform produces the L2-normalized TF-IDF vector for the given text.
// Terms outside the training vocabulary are ignored. The result is owned by
// the caller; the vectorizer itself is never mutated.
func (v *Vectorizer) Transform(text string) SparseVector {
	tokens := wordToken.FindAllString(strings.ToLower(text), -1)

	counts := make(map[int]float64)
	for i, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
		if i+1 < len(tokens) {
			if idx, ok := v.vocabulary[tok+" "+tokens[i+1]]; ok {
				counts[idx]++
			}
		}
	}

	vec := SparseVector{Dim: v.Dim(), Values: make(map[int]float64, len(counts))}
	var sumSquares float64
	for idx, count := range counts {
		weighted := count * v.idf[idx]
		vec.Values[idx] = weighted
		sumSquares += weighted * weighted
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for idx := range vec.Values {
			vec.Values[idx] /= norm
		}
	}
	return vec
}
