package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Artifacts bundles everything the offline training run exports for serving.
// Loading happens once at startup; any failure here is fatal for the process.
type Artifacts struct {
	Vectorizer *Vectorizer
	Scorer     *Scorer
	Clusters   *ClusterModel
}

type vectorizerFile struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

type classifierFile struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

type clustersFile struct {
	Centroids [][]float64 `json:"centroids"`
}

// LoadArtifacts reads the three JSON artifact files exported by the trainer
// and cross-checks their dimensions so a version skew between files is caught
// at boot rather than on the first request.
func LoadArtifacts(vectorizerPath, classifierPath, clustersPath string, log *slog.Logger) (*Artifacts, error) {
	var vf vectorizerFile
	if err := readJSON(vectorizerPath, &vf); err != nil {
		return nil, fmt.Errorf("loading vectorizer artifact: %w", err)
	}
	if len(vf.Vocabulary) != len(vf.IDF) {
		return nil, fmt.Errorf("vectorizer artifact inconsistent: %d vocabulary entries, %d idf weights",
			len(vf.Vocabulary), len(vf.IDF))
	}
	for term, idx := range vf.Vocabulary {
		if idx < 0 || idx >= len(vf.IDF) {
			return nil, fmt.Errorf("vectorizer artifact inconsistent: term %q maps to column %d, idf has %d weights",
				term, idx, len(vf.IDF))
		}
	}

	var cf classifierFile
	if err := readJSON(classifierPath, &cf); err != nil {
		return nil, fmt.Errorf("loading classifier artifact: %w", err)
	}
	if len(cf.Weights) != len(vf.IDF) {
		return nil, fmt.Errorf("classifier expects dim %d, vectorizer provides %d",
			len(cf.Weights), len(vf.IDF))
	}

	var kf clustersFile
	if err := readJSON(clustersPath, &kf); err != nil {
		return nil, fmt.Errorf("loading clusters artifact: %w", err)
	}
	if len(kf.Centroids) == 0 {
		return nil, fmt.Errorf("clusters artifact has no centroids")
	}
	for i, row := range kf.Centroids {
		if len(row) != len(vf.IDF) {
			return nil, fmt.Errorf("centroid %d has dim %d, expected %d", i, len(row), len(vf.IDF))
		}
	}

	log.Info("Loaded model artifacts",
		"features", len(vf.IDF),
		"clusters", len(kf.Centroids),
	)

	return &Artifacts{
		Vectorizer: NewVectorizer(vf.Vocabulary, vf.IDF),
		Scorer:     NewScorer(cf.Weights, cf.Intercept),
		Clusters:   NewClusterModel(kf.Centroids),
	}, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
