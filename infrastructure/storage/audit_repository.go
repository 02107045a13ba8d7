//go:generate go run go.uber.org/mock/mockgen -source=audit_repository.go -destination=../../mocks/mock_audit_repository.go -package=mocks
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"scam-radar/sink"
)

// AuditRecord is the persisted form of one completed classification.
type AuditRecord struct {
	ID          uuid.UUID `json:"id"`
	SenderHash  string    `json:"sender_hash"`
	Text        string    `json:"text"`
	Label       string    `json:"label"`
	Probability float64   `json:"probability"`
	Language    string    `json:"language"`
	At          time.Time `json:"at"`
}

type IAuditRepository interface {
	Store(record AuditRecord) error
	Recent(limit int) ([]AuditRecord, error)
}

// AuditRepository persists classification audit records in BadgerDB.
// It also satisfies sink.Recorder so the orchestrator can write to it
// directly.
type AuditRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAuditRepository(db *badger.DB, log *slog.Logger) *AuditRepository {
	return &AuditRepository{db: db, log: log}
}

// Store persists a record under "audit:{timestamp_padded}:{uuid}".
// The 19-digit zero padding keeps keys in chronological lexicographic order;
// the UUID disambiguates records landing on the same nanosecond.
func (r *AuditRepository) Store(record AuditRecord) error {
	key := fmt.Sprintf("audit:%019d:%s", record.At.UnixNano(), record.ID)

	value, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Recent returns up to limit records, newest first, via a reverse prefix scan.
func (r *AuditRepository) Recent(limit int) ([]AuditRecord, error) {
	var records []AuditRecord
	prefix := []byte("audit:")

	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible timestamp, then walk backwards.
		seekKey := append([]byte{}, prefix...)
		seekKey = append(seekKey, []byte("9999999999999999999")...)

		for it.Seek(seekKey); it.ValidForPrefix(prefix) && len(records) < limit; it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var record AuditRecord
				if err := json.Unmarshal(v, &record); err != nil {
					return fmt.Errorf("unmarshaling audit record %s: %w", it.Item().Key(), err)
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Record implements sink.Recorder.
func (r *AuditRepository) Record(interaction sink.Interaction) error {
	return r.Store(AuditRecord{
		ID:          interaction.ID,
		SenderHash:  interaction.SenderHash,
		Text:        interaction.Text,
		Label:       string(interaction.Label),
		Probability: interaction.Probability,
		Language:    interaction.Language,
		At:          interaction.At,
	})
}
