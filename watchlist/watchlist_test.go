package watchlist

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "scam-radar/errors"
)

func TestWatchlist_Match(t *testing.T) {
	req := require.New(t)
	wl, err := New([]string{"verification code", "share the code", "send money"}, slog.Default())
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Plain phrase",
			input:    "WhatsApp verification code: 482913.",
			expected: []string{"verification code"},
		},
		{
			name:     "Multiple distinct phrases",
			input:    "share the code or send money now",
			expected: []string{"share the code", "send money"},
		},
		{
			name:     "Leet speak and noise",
			input:    "please sh4re the c.o.d.e",
			expected: []string{"share the code"},
		},
		{
			name:     "Duplicates reported once",
			input:    "send money, I said send money",
			expected: []string{"send money"},
		},
		{
			name:     "No hit",
			input:    "see you at the meeting tomorrow",
			expected: nil,
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, wl.Match(tt.input))
		})
	}
}

func TestWatchlist_New_Empty(t *testing.T) {
	req := require.New(t)

	_, err := New(nil, slog.Default())
	req.ErrorIs(err, apperrors.ErrEmptyWatchlist)

	_, err = New([]string{"...", "  "}, slog.Default())
	req.ErrorIs(err, apperrors.ErrEmptyWatchlist)
}

func TestWatchlist_DefaultPhrases(t *testing.T) {
	req := require.New(t)
	wl, err := New(DefaultPhrases(), slog.Default())
	req.NoError(err)

	hits := wl.Match("This is WhatsApp support. Your OTP is 345678. Please share to verify.")
	req.Contains(hits, "your otp is")
}
