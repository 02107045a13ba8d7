package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scam-radar/domain"
	apperrors "scam-radar/errors"
)

func TestScorer_Score(t *testing.T) {
	req := require.New(t)
	scorer := NewScorer([]float64{2.0, -1.0, 0.5}, -0.25)

	tests := []struct {
		name          string
		values        map[int]float64
		expectedLabel domain.Label
	}{
		{
			name:          "Strong scam signal",
			values:        map[int]float64{0: 1.0},
			expectedLabel: domain.LabelScam,
		},
		{
			name:          "Strong legit signal",
			values:        map[int]float64{1: 1.0},
			expectedLabel: domain.LabelLegit,
		},
		{
			name:          "Empty vector falls back to intercept",
			values:        map[int]float64{},
			expectedLabel: domain.LabelLegit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := scorer.Score(SparseVector{Dim: 3, Values: tt.values})
			req.NoError(err)
			req.Equal(tt.expectedLabel, score.Label)
			req.GreaterOrEqual(score.Probability, 0.0)
			req.LessOrEqual(score.Probability, 1.0)
			// the label is always the thresholded probability
			req.Equal(domain.LabelFor(score.Probability), score.Label)
		})
	}
}

// A probability of exactly 0.5 must classify as SCAM.
func TestScorer_Score_ThresholdBoundary(t *testing.T) {
	req := require.New(t)
	scorer := NewScorer([]float64{1.0}, 0.0)

	score, err := scorer.Score(SparseVector{Dim: 1, Values: map[int]float64{}})
	req.NoError(err)
	req.InDelta(0.5, score.Probability, 1e-12)
	req.Equal(domain.LabelScam, score.Label)
}

func TestScorer_Score_DimensionMismatch(t *testing.T) {
	req := require.New(t)
	scorer := NewScorer([]float64{1.0, 2.0}, 0.0)

	_, err := scorer.Score(SparseVector{Dim: 3, Values: map[int]float64{0: 1}})
	req.ErrorIs(err, apperrors.ErrDimensionMismatch)
}
