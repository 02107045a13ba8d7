package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServing_Apply(t *testing.T) {
	req := require.New(t)
	n := Serving()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Verification code with digit run",
			input:    "WhatsApp verification code: 482913. Please share the code so I can confirm.",
			expected: "whatsapp verification code <NUM> please share the code so i can confirm",
		},
		{
			name:     "URL replaced by placeholder",
			input:    "Your parcel is ready, click http://fake-delivery.example now!",
			expected: "your parcel is ready click <URL> now",
		},
		{
			name:     "Scheme URL replaced by placeholder",
			input:    "verify at https://bank.example/login",
			expected: "verify at <URL>",
		},
		{
			name:     "Short digit runs stay",
			input:    "Meet at 5pm in room 42",
			expected: "meet at 5pm in room 42",
		},
		{
			name:     "Three digits are masked",
			input:    "call 911 now",
			expected: "call <NUM> now",
		},
		{
			name:     "Punctuation stripped, whitespace collapsed",
			input:    "  Hello,,,   world!!  ",
			expected: "hello world",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "Whitespace only",
			input:    "   \t\n ",
			expected: "",
		},
		{
			name:     "Punctuation only collapses to empty",
			input:    "?!... -- !!",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, n.Apply(tt.input))
		})
	}
}

func TestTraining_Apply(t *testing.T) {
	req := require.New(t)
	n := Training()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Four digit run masked without delimiters",
			input:    "Your account code 987654 please confirm",
			expected: "your account code NUM please confirm",
		},
		{
			name:     "Three digit run is kept",
			input:    "call 911 now",
			expected: "call 911 now",
		},
		{
			name:     "URLs removed entirely",
			input:    "click http://scam.example to claim",
			expected: "click to claim",
		},
		{
			name:     "Full punctuation strip",
			input:    "Hi, it's John -- on a new <number>!",
			expected: "hi its john on a new number",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, n.Apply(tt.input))
		})
	}
}

// Both presets must be stable under re-application: the canonical form of a
// canonical form is itself.
func TestApply_Idempotent(t *testing.T) {
	req := require.New(t)

	inputs := []string{
		"WhatsApp verification code: 482913. Please share the code so I can confirm.",
		"Your parcel is ready for delivery. Click http://fake-delivery.example to confirm.",
		"Can you send the report by tomorrow morning?",
		"Transfer me $200 now, my account is frozen.",
		"Hi it's John on a new number -- can you confirm my code? 564321",
		"", "   ", "!!??", "num num 123456 num",
	}

	for _, n := range []Normalizer{Serving(), Training()} {
		for _, input := range inputs {
			once := n.Apply(input)
			req.Equal(once, n.Apply(once), "input %q", input)
		}
	}
}
