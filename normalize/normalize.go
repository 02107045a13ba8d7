// Package normalize canonicalizes raw message text before feature extraction.
//
// Two presets coexist on purpose: the serving path masks shorter digit runs
// and keeps placeholder delimiters, while the training path (also used by the
// diagnostic dashboard) masks longer runs and strips all ASCII punctuation.
// The reference dataset and cluster model were fitted on the training variant,
// so the two must not be unified.
package normalize

import (
	"regexp"
	"strings"
)

const (
	// URLToken replaces every URL-like run.
	URLToken = "<URL>"
	// NumToken replaces long digit runs.
	NumToken = "<NUM>"
)

var (
	urlPattern    = regexp.MustCompile(`\w+://\S+|http\S+`)
	digitRun3     = regexp.MustCompile(`\d{3,}`)
	digitRun4     = regexp.MustCompile(`\d{4,}`)
	nonWord       = regexp.MustCompile(`[^\w\s<>]`)
	spaces        = regexp.MustCompile(`\s+`)
	bareNumToken  = regexp.MustCompile(`\bnum\b`)
	asciiPunct    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	lowerURLToken = strings.ToLower(URLToken)
	lowerNumToken = strings.ToLower(NumToken)
)

// Normalizer is a pure, deterministic text canonicalizer.
// The zero value is not useful; build one with Serving or Training.
type Normalizer struct {
	digitRun *regexp.Regexp
	keepURLs bool
	fullStrip bool
}

// Serving returns the normalizer used on the live classification path:
// URLs become <URL>, runs of 3+ digits become <NUM>, everything that is not
// a word character, whitespace or a placeholder delimiter is dropped.
func Serving() Normalizer {
	return Normalizer{digitRun: digitRun3, keepURLs: true}
}

// Training returns the variant the model and clusters were fitted with:
// URLs are removed entirely, runs of 4+ digits become <NUM>, and the full
// ASCII punctuation table is stripped (including the placeholder delimiters,
// leaving the bare NUM token, which the vectorizer lowercases anyway).
func Training() Normalizer {
	return Normalizer{digitRun: digitRun4, fullStrip: true}
}

// Apply canonicalizes raw text. It is total and idempotent: empty input (or
// input that collapses to nothing) yields the empty string.
func (n Normalizer) Apply(raw string) string {
	s := strings.ToLower(raw)

	if n.keepURLs {
		s = urlPattern.ReplaceAllString(s, " "+URLToken+" ")
	} else {
		s = urlPattern.ReplaceAllString(s, " ")
	}
	s = n.digitRun.ReplaceAllString(s, " "+NumToken+" ")

	if n.fullStrip {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(asciiPunct, r) {
				return -1
			}
			return r
		}, s)
		// The stripped placeholder survives as a bare NUM word; restore
		// its canonical casing so Apply(Apply(x)) == Apply(x).
		s = bareNumToken.ReplaceAllString(s, "NUM")
	} else {
		s = nonWord.ReplaceAllString(s, " ")
		// Re-canonicalize placeholders that went through the initial
		// lowercasing, so Apply(Apply(x)) == Apply(x).
		s = strings.ReplaceAll(s, lowerURLToken, URLToken)
		s = strings.ReplaceAll(s, lowerNumToken, NumToken)
	}

	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
