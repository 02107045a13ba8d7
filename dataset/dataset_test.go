package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"scam-radar/ai"
)

// fixtureVectorizer covers the vocabulary of the fixture corpus below.
func fixtureVectorizer() *ai.Vectorizer {
	vocabulary := map[string]int{
		"verification": 0,
		"code":         1,
		"share":        2,
		"report":       3,
		"tomorrow":     4,
		"prize":        5,
		"click":        6,
	}
	idf := []float64{2.0, 1.8, 2.2, 1.5, 1.6, 2.5, 2.3}
	return ai.NewVectorizer(vocabulary, idf)
}

const fixtureCSV = `text,label,scam_type,cluster
"Please share the verification code",scam,otp,0
"Your verification code is ready",scam,otp,0
"Send the report by tomorrow",legit,none,1
"Report is due tomorrow morning",legit,none,1
"You won a prize, click here",scam,phishing,2
`

func fixtureReference(t *testing.T) *Reference {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages_with_clusters.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))

	ref, err := Load(path, fixtureVectorizer(), slog.Default())
	require.NoError(t, err)
	return ref
}

func TestLoad(t *testing.T) {
	req := require.New(t)
	ref := fixtureReference(t)

	req.Equal(5, ref.Len())
	req.Equal("otp", ref.Entries()[0].ScamType)
	req.Equal(2, ref.Entries()[4].Cluster)
}

func TestLoad_Failures(t *testing.T) {
	req := require.New(t)
	v := fixtureVectorizer()

	tests := []struct {
		name    string
		content string
	}{
		{name: "Missing column", content: "text,label,cluster\nhi,legit,0\n"},
		{name: "Bad cluster id", content: "text,label,scam_type,cluster\nhi,legit,none,abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.csv")
			req.NoError(os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path, v, slog.Default())
			req.Error(err)
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), v, slog.Default())
		req.Error(err)
	})
}

func TestReference_TopSimilar(t *testing.T) {
	req := require.New(t)
	ref := fixtureReference(t)
	v := fixtureVectorizer()

	query := v.Transform("share the verification code")
	similar := ref.TopSimilar(query, 0, 5)

	// cluster 0 only has two members, both returned, best first
	req.Len(similar, 2)
	req.Equal("Please share the verification code", similar[0].Text)
	req.GreaterOrEqual(similar[0].Similarity, similar[1].Similarity)
	for _, s := range similar {
		req.Equal(0, s.Cluster)
	}
}

func TestReference_TopSimilar_Bounds(t *testing.T) {
	req := require.New(t)
	ref := fixtureReference(t)
	v := fixtureVectorizer()
	query := v.Transform("report tomorrow")

	t.Run("Limit respected", func(t *testing.T) {
		similar := ref.TopSimilar(query, 1, 1)
		req.Len(similar, 1)
	})

	t.Run("Empty cluster yields empty slice", func(t *testing.T) {
		similar := ref.TopSimilar(query, 9, 5)
		req.NotNil(similar)
		req.Empty(similar)
	})

	t.Run("Non positive n yields empty slice", func(t *testing.T) {
		req.Empty(ref.TopSimilar(query, 1, 0))
	})
}

// Ordering must be non-increasing across the whole result.
func TestReference_TopSimilar_Sorted(t *testing.T) {
	req := require.New(t)
	ref := fixtureReference(t)
	v := fixtureVectorizer()

	query := v.Transform("verification code report")
	for cluster := 0; cluster < 3; cluster++ {
		similar := ref.TopSimilar(query, cluster, 10)
		for i := 1; i < len(similar); i++ {
			req.GreaterOrEqual(similar[i-1].Similarity, similar[i].Similarity)
		}
	}
}
