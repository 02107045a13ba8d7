// Package ratelimit implements per-sender sliding-window admission control
// for the classification pipeline. The limiter is an injectable service with
// its own synchronized storage so it can be unit-tested in isolation and
// swapped for a shared store in a multi-instance deployment.
package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultWindow is the trailing interval requests are counted over.
	DefaultWindow = 60 * time.Second
	// DefaultMaxPerWindow is the admission cap per sender inside one window.
	DefaultMaxPerWindow = 6
)

// SlidingWindow counts requests per sender over a trailing window.
// This is not a token bucket: a rejected call does not consume a slot, so a
// sender at the limit must wait for its oldest admission to age out.
type SlidingWindow struct {
	mu           sync.Mutex
	window       time.Duration
	maxPerWindow int
	records      map[string][]time.Time
	log          *slog.Logger
}

// NewSlidingWindow builds a limiter. Zero or negative parameters fall back
// to the defaults.
func NewSlidingWindow(window time.Duration, maxPerWindow int, log *slog.Logger) *SlidingWindow {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxPerWindow <= 0 {
		maxPerWindow = DefaultMaxPerWindow
	}
	return &SlidingWindow{
		window:       window,
		maxPerWindow: maxPerWindow,
		records:      make(map[string][]time.Time),
		log:          log,
	}
}

// Admit reports whether a request from sender at time now may proceed.
// Timestamps older than now-window are discarded first; an admitted request
// records now, a rejected one records nothing.
func (l *SlidingWindow) Admit(sender string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := now.Add(-l.window)
	kept := l.records[sender][:0]
	for _, ts := range l.records[sender] {
		if !ts.Before(windowStart) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.maxPerWindow {
		l.records[sender] = kept
		l.log.Debug("Rate limit exceeded", "sender", sender, "count", len(kept))
		return false
	}

	l.records[sender] = append(kept, now)
	return true
}

// Tracked returns the number of senders currently holding a record.
func (l *SlidingWindow) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// PruneIdle drops every sender whose admissions have all aged out of the
// window, bounding memory for long-lived processes with many one-off
// senders. Returns the number of evicted records. Meant to run periodically
// from a background ticker.
func (l *SlidingWindow) PruneIdle(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := now.Add(-l.window)
	evicted := 0
	for sender, timestamps := range l.records {
		live := false
		for _, ts := range timestamps {
			if !ts.Before(windowStart) {
				live = true
				break
			}
		}
		if !live {
			delete(l.records, sender)
			evicted++
		}
	}
	if evicted > 0 {
		l.log.Debug("Evicted idle sender records", "count", evicted)
	}
	return evicted
}
