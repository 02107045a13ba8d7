package ai

import (
	"fmt"
	"math"

	"scam-radar/domain"
	apperrors "scam-radar/errors"
)

// Scorer applies the pretrained logistic regression (class-balanced training)
// to a feature vector. Deterministic for fixed weights and input.
type Scorer struct {
	weights   []float64
	intercept float64
}

// NewScorer builds a scorer from exported classifier coefficients.
func NewScorer(weights []float64, intercept float64) *Scorer {
	return &Scorer{weights: weights, intercept: intercept}
}

// Score returns the scam probability and thresholded label for a vector.
// A dimension mismatch between the vector and the weights means the
// vectorizer and classifier artifacts are out of sync; the request fails
// but the process keeps serving.
func (s *Scorer) Score(vec SparseVector) (domain.Score, error) {
	if vec.Dim != len(s.weights) {
		return domain.Score{}, fmt.Errorf("scoring vector of dim %d against model of dim %d: %w",
			vec.Dim, len(s.weights), apperrors.ErrDimensionMismatch)
	}

	z := s.intercept
	for idx, val := range vec.Values {
		z += s.weights[idx] * val
	}
	p := 1.0 / (1.0 + math.Exp(-z))

	return domain.Score{Probability: p, Label: domain.LabelFor(p)}, nil
}
