package services

import (
	"context"
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"scam-radar/ai"
	"scam-radar/dataset"
	"scam-radar/domain"
	apperrors "scam-radar/errors"
	"scam-radar/normalize"
)

// Inspection is the diagnostic view of one message: its score, its cluster
// and the nearest precedents from the reference corpus.
type Inspection struct {
	Label       domain.Label           `json:"label"`
	Probability float64                `json:"probability"`
	Cluster     int                    `json:"cluster"`
	Language    string                 `json:"language"`
	Similar     []dataset.SimilarEntry `json:"similar"`
}

// RetrievalService explains classifications by precedent. It uses the
// training-path normalizer because the cluster model and reference vectors
// were fitted on that variant. Read-only and safe for concurrent use.
type RetrievalService struct {
	normalizer normalize.Normalizer
	vectorizer *ai.Vectorizer
	scorer     *ai.Scorer
	clusters   *ai.ClusterModel
	reference  *dataset.Reference
	index      *dataset.SearchIndex
	log        *slog.Logger
}

func NewRetrievalService(
	vectorizer *ai.Vectorizer,
	scorer *ai.Scorer,
	clusters *ai.ClusterModel,
	reference *dataset.Reference,
	index *dataset.SearchIndex,
	log *slog.Logger,
) *RetrievalService {
	return &RetrievalService{
		normalizer: normalize.Training(),
		vectorizer: vectorizer,
		scorer:     scorer,
		clusters:   clusters,
		reference:  reference,
		index:      index,
		log:        log,
	}
}

// Inspect scores rawText, assigns its cluster and returns the topN most
// similar reference messages from that cluster.
func (s *RetrievalService) Inspect(rawText string, topN int) (Inspection, error) {
	cleaned := s.normalizer.Apply(rawText)
	if cleaned == "" {
		return Inspection{}, apperrors.ErrEmptyMessage
	}

	vec := s.vectorizer.Transform(cleaned)
	score, err := s.scorer.Score(vec)
	if err != nil {
		return Inspection{}, err
	}

	cluster := s.clusters.Assign(vec)
	info := whatlanggo.Detect(rawText)

	return Inspection{
		Label:       score.Label,
		Probability: score.Probability,
		Cluster:     cluster,
		Language:    info.Lang.Iso6391(),
		Similar:     s.reference.TopSimilar(vec, cluster, topN),
	}, nil
}

// Search runs a keyword query against the reference corpus index.
func (s *RetrievalService) Search(ctx context.Context, query string, limit int) ([]dataset.Entry, error) {
	return s.index.Search(ctx, query, limit)
}
