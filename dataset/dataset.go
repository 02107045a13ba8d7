// Package dataset loads the labeled reference corpus exported by the trainer
// and answers precedent lookups for the diagnostic path. The corpus is
// immutable after load: feature vectors are computed once and cached, so
// retrieval never touches the vectorizer again.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"scam-radar/ai"
	"scam-radar/normalize"
)

// Entry is one historical message from the reference corpus.
type Entry struct {
	Text     string `json:"text"`
	Label    string `json:"label"`
	ScamType string `json:"scam_type"`
	Cluster  int    `json:"cluster"`
}

// SimilarEntry is a reference entry ranked against a query vector.
type SimilarEntry struct {
	Entry
	Similarity float64 `json:"similarity"`
}

// Reference is the in-memory, read-only reference corpus with precomputed
// feature vectors grouped per cluster. Safe for concurrent use.
type Reference struct {
	entries   []Entry
	vectors   []ai.SparseVector
	byCluster map[int][]int
}

// Load reads the messages CSV (columns text,label,scam_type,cluster) and
// precomputes the TF-IDF vector of every row. Rows are vectorized with the
// training normalizer because the cluster ids in the file were fitted on
// cleaned text.
func Load(path string, vectorizer *ai.Vectorizer, log *slog.Logger) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference dataset: %w", err)
	}
	defer f.Close()

	return read(f, vectorizer, log)
}

func read(r io.Reader, vectorizer *ai.Vectorizer, log *slog.Logger) (*Reference, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"text", "label", "scam_type", "cluster"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("reference dataset is missing column %q", required)
		}
	}

	norm := normalize.Training()
	ref := &Reference{byCluster: make(map[int][]int)}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset line %d: %w", line, err)
		}
		line++

		cluster, err := strconv.Atoi(record[cols["cluster"]])
		if err != nil {
			return nil, fmt.Errorf("dataset line %d: bad cluster id %q", line, record[cols["cluster"]])
		}

		entry := Entry{
			Text:     record[cols["text"]],
			Label:    record[cols["label"]],
			ScamType: record[cols["scam_type"]],
			Cluster:  cluster,
		}
		idx := len(ref.entries)
		ref.entries = append(ref.entries, entry)
		ref.vectors = append(ref.vectors, vectorizer.Transform(norm.Apply(entry.Text)))
		ref.byCluster[cluster] = append(ref.byCluster[cluster], idx)
	}

	log.Info("Loaded reference dataset", "rows", len(ref.entries), "clusters", len(ref.byCluster))
	return ref, nil
}

// Len returns the number of reference entries.
func (r *Reference) Len() int {
	return len(r.entries)
}

// Entries returns the full corpus in original order. The slice is shared;
// callers must not mutate it.
func (r *Reference) Entries() []Entry {
	return r.entries
}

// TopSimilar ranks the members of one cluster by cosine similarity to vec
// and returns at most n of them, best first. Ties keep the original dataset
// order. An unknown or empty cluster yields an empty slice.
func (r *Reference) TopSimilar(vec ai.SparseVector, cluster, n int) []SimilarEntry {
	members := r.byCluster[cluster]
	if len(members) == 0 || n <= 0 {
		return []SimilarEntry{}
	}

	ranked := make([]SimilarEntry, 0, len(members))
	for _, idx := range members {
		ranked = append(ranked, SimilarEntry{
			Entry:      r.entries[idx],
			Similarity: ai.CosineSimilarity(vec, r.vectors[idx]),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
