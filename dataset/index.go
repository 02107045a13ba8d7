package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"
)

// SearchIndex is a full-text index over the reference corpus, used by the
// dashboard to look precedents up by keyword rather than by similarity.
type SearchIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

// BuildIndex indexes every reference entry into a Bluge index at the given
// config location. The index is rebuilt at startup; the dataset never changes
// while serving.
func BuildIndex(cfg bluge.Config, ref *Reference, log *slog.Logger) (*SearchIndex, error) {
	writer, err := bluge.OpenWriter(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening bluge writer: %w", err)
	}

	batch := bluge.NewBatch()
	for i, entry := range ref.Entries() {
		doc := bluge.NewDocument(strconv.Itoa(i)).
			AddField(bluge.NewTextField("text", entry.Text).StoreValue()).
			AddField(bluge.NewKeywordField("label", entry.Label).StoreValue()).
			AddField(bluge.NewKeywordField("scam_type", entry.ScamType).StoreValue()).
			AddField(bluge.NewKeywordField("cluster", strconv.Itoa(entry.Cluster)).StoreValue())
		batch.Update(doc.ID(), doc)
	}
	if err := writer.Batch(batch); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("indexing reference dataset: %w", err)
	}

	log.Info("Indexed reference dataset", "docs", ref.Len())
	return &SearchIndex{writer: writer, log: log}, nil
}

// Close releases the underlying index.
func (s *SearchIndex) Close() error {
	return s.writer.Close()
}

// Search runs a match query against the text field and returns up to limit
// entries, best match first.
func (s *SearchIndex) Search(ctx context.Context, terms string, limit int) ([]Entry, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("opening bluge reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Warn("Failed to close bluge reader", "err", err)
		}
	}()

	query := bluge.NewMatchQuery(terms).SetField("text")
	request := bluge.NewTopNSearch(limit, query)

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("searching reference dataset: %w", err)
	}

	var results []Entry
	match, err := iterator.Next()
	for err == nil && match != nil {
		var entry Entry
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "text":
				entry.Text = string(value)
			case "label":
				entry.Label = string(value)
			case "scam_type":
				entry.ScamType = string(value)
			case "cluster":
				if c, convErr := strconv.Atoi(string(value)); convErr == nil {
					entry.Cluster = c
				}
			}
			return true
		})
		if visitErr != nil {
			return nil, fmt.Errorf("reading stored fields: %w", visitErr)
		}
		results = append(results, entry)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}
