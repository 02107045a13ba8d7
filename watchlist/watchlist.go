// Package watchlist flags known scam phrases inside a message. Matching is
// tolerant to leet speak, punctuation and spacing tricks, so "sh4re the
// c.o.d.e" still hits the "share the code" entry. The watchlist is a
// secondary heuristic signal surfaced next to the model probability; it
// never overrides the classifier's label.
package watchlist

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	apperrors "scam-radar/errors"
)

type Watchlist struct {
	matcher *goahocorasick.Machine
	// normalized pattern -> original phrase, for reporting matches in
	// their human-readable form
	phrases map[string]string
	log     *slog.Logger
}

// New builds the Aho-Corasick automaton over a normalized version of the
// provided phrases.
func New(phrases []string, log *slog.Logger) (*Watchlist, error) {
	if len(phrases) == 0 {
		return nil, apperrors.ErrEmptyWatchlist
	}

	patterns := make([][]rune, 0, len(phrases))
	originals := make(map[string]string, len(phrases))
	for _, phrase := range phrases {
		normalized := normalizeRunes([]rune(phrase))
		if len(normalized) == 0 {
			continue
		}
		patterns = append(patterns, normalized)
		originals[string(normalized)] = phrase
	}
	if len(patterns) == 0 {
		return nil, apperrors.ErrEmptyWatchlist
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}

	log.Info("Built watchlist automaton", "phrases", len(patterns))
	return &Watchlist{matcher: m, phrases: originals, log: log}, nil
}

// DefaultPhrases is the built-in list of phrases seen across OTP, phishing,
// impersonation and money-transfer scams in the reference corpus.
func DefaultPhrases() []string {
	return []string{
		"verification code",
		"share the code",
		"send me the code",
		"forward it",
		"your otp is",
		"click this link",
		"click the link",
		"verify here",
		"claim your reward",
		"account needs verification",
		"send money",
		"transfer me",
		"account is frozen",
		"lost my phone",
		"on a new number",
		"investment opportunity",
	}
}

// Match returns the distinct watchlist phrases present in text, in order of
// first occurrence. Total function: no watchlist hit means an empty slice.
func (w *Watchlist) Match(text string) []string {
	normalized := normalizeRunes([]rune(text))
	if len(normalized) == 0 {
		return nil
	}

	spans := w.matcher.MultiPatternSearch(normalized, false)
	if len(spans) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(spans))
	var hits []string
	for _, span := range spans {
		phrase, ok := w.phrases[string(span.Word)]
		if !ok {
			continue
		}
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}
		hits = append(hits, phrase)
	}
	if len(hits) > 0 {
		w.log.Debug("Watchlist phrases matched", "count", len(hits))
	}
	return hits
}

// normalizeRunes lowercases, maps common leet substitutions back to letters
// and drops punctuation, whitespace and symbols so the automaton sees a
// compact canonical stream.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
