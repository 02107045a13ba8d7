//go:generate go run go.uber.org/mock/mockgen -source=recorder.go -destination=../mocks/mock_recorder.go -package=mocks

// Package sink persists the audit trail of completed classifications.
// Recording is best-effort by contract: the orchestrator logs and discards
// any error returned here, so a broken audit path never affects the reply
// already computed for the sender.
package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"scam-radar/domain"
)

// Interaction is one completed classification. It carries the hashed sender
// identity, never the raw one.
type Interaction struct {
	ID          uuid.UUID
	SenderHash  string
	Text        string
	Label       domain.Label
	Probability float64
	Language    string
	At          time.Time
}

// Recorder appends interactions to an audit trail.
type Recorder interface {
	Record(interaction Interaction) error
}

// CSVRecorder appends interactions to a CSV file, writing the header on
// first use. Writes are serialized with a mutex; the file is opened per
// record so external log rotation keeps working.
type CSVRecorder struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

func NewCSVRecorder(path string, log *slog.Logger) *CSVRecorder {
	return &CSVRecorder{path: path, log: log}
}

var csvHeader = []string{"timestamp", "sender_hash", "prediction", "probability", "language", "text"}

func (c *CSVRecorder) Record(interaction Interaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat audit log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("writing audit header: %w", err)
		}
	}

	row := []string{
		interaction.At.UTC().Format(time.RFC3339),
		interaction.SenderHash,
		string(interaction.Label),
		strconv.FormatFloat(interaction.Probability, 'f', 4, 64),
		interaction.Language,
		interaction.Text,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("writing audit row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Fanout replicates every interaction to all recorders and joins their
// errors, so one failing destination does not starve the others.
type Fanout struct {
	recorders []Recorder
}

func NewFanout(recorders ...Recorder) *Fanout {
	return &Fanout{recorders: recorders}
}

func (f *Fanout) Record(interaction Interaction) error {
	var errs []error
	for _, r := range f.recorders {
		if err := r.Record(interaction); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
