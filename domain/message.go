// Package domain contains core concepts of the scam detection pipeline.
// This file defines inbound messages and classification results.
// Messages are ephemeral: they live for a single request and are never
// persisted directly, only their sender hash and text reach the audit trail.
package domain

import (
	"time"
)

// Message represents a single inbound chat message to classify.
type Message struct {
	Sender string // opaque sender identity, e.g. "whatsapp:+14155550100"
	Text   string // raw UTF-8 content, possibly empty
	At     time.Time
}

// Label is the binary classification outcome.
type Label string

const (
	LabelScam  Label = "SCAM"
	LabelLegit Label = "LEGIT"
)

// Score couples the scam probability with its thresholded label.
// Invariant: Label == LabelScam exactly when Probability >= 0.5.
type Score struct {
	Probability float64
	Label       Label
}

// LabelFor thresholds a scam probability at 0.5.
func LabelFor(probability float64) Label {
	if probability >= 0.5 {
		return LabelScam
	}
	return LabelLegit
}
