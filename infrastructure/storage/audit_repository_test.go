package storage

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"scam-radar/domain"
	"scam-radar/sink"
)

func testDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAuditRepository_Store_And_Recent(t *testing.T) {
	req := require.New(t)
	repo := NewAuditRepository(testDB(t), slog.Default())
	now := time.Now().UTC()

	for i := 1; i <= 5; i++ {
		err := repo.Store(AuditRecord{
			ID:          uuid.New(),
			SenderHash:  fmt.Sprintf("hash-%02d", i),
			Text:        fmt.Sprintf("message %d", i),
			Label:       "SCAM",
			Probability: 0.9,
			Language:    "en",
			At:          now.Add(time.Duration(i) * time.Minute),
		})
		req.NoError(err)
	}

	records, err := repo.Recent(3)
	req.NoError(err)
	req.Len(records, 3)

	// newest first
	req.Equal("hash-05", records[0].SenderHash)
	req.Equal("hash-04", records[1].SenderHash)
	req.Equal("hash-03", records[2].SenderHash)
}

func TestAuditRepository_Recent_Empty(t *testing.T) {
	req := require.New(t)
	repo := NewAuditRepository(testDB(t), slog.Default())

	records, err := repo.Recent(10)
	req.NoError(err)
	req.Empty(records)
}

func TestAuditRepository_Record_RoundTrip(t *testing.T) {
	req := require.New(t)
	repo := NewAuditRepository(testDB(t), slog.Default())
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	interaction := sink.Interaction{
		ID:          uuid.New(),
		SenderHash:  "cafebabe00112233",
		Text:        "share the verification code",
		Label:       domain.LabelScam,
		Probability: 0.97,
		Language:    "en",
		At:          at,
	}
	req.NoError(repo.Record(interaction))

	records, err := repo.Recent(1)
	req.NoError(err)
	req.Len(records, 1)
	req.Equal(interaction.ID, records[0].ID)
	req.Equal("SCAM", records[0].Label)
	req.InDelta(0.97, records[0].Probability, 1e-9)
	req.True(records[0].At.Equal(at))
}
