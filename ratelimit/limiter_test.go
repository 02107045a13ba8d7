package ratelimit

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlidingWindow_Admit_Cap(t *testing.T) {
	req := require.New(t)
	limiter := NewSlidingWindow(60*time.Second, 6, slog.Default())
	now := time.Now()

	for i := 0; i < 6; i++ {
		req.True(limiter.Admit("sender-a", now), "call %d should be admitted", i+1)
	}
	req.False(limiter.Admit("sender-a", now), "7th call within the window must be rejected")

	// another sender is unaffected
	req.True(limiter.Admit("sender-b", now))
}

func TestSlidingWindow_Admit_AgeOut(t *testing.T) {
	req := require.New(t)
	limiter := NewSlidingWindow(60*time.Second, 6, slog.Default())
	start := time.Now()

	for i := 0; i < 6; i++ {
		req.True(limiter.Admit("sender", start.Add(time.Duration(i)*time.Second)))
	}
	req.False(limiter.Admit("sender", start.Add(30*time.Second)))

	// once the first admission ages out, one slot frees up
	req.True(limiter.Admit("sender", start.Add(61*time.Second)))
	req.False(limiter.Admit("sender", start.Add(61*time.Second)))
}

// Rejection must not consume a slot: hammering while at the limit does not
// push the age-out point further away.
func TestSlidingWindow_Admit_RejectionRecordsNothing(t *testing.T) {
	req := require.New(t)
	limiter := NewSlidingWindow(60*time.Second, 2, slog.Default())
	start := time.Now()

	req.True(limiter.Admit("sender", start))
	req.True(limiter.Admit("sender", start.Add(time.Second)))

	for i := 0; i < 50; i++ {
		req.False(limiter.Admit("sender", start.Add(2*time.Second)))
	}

	req.True(limiter.Admit("sender", start.Add(61*time.Second)))
}

func TestSlidingWindow_PruneIdle(t *testing.T) {
	req := require.New(t)
	limiter := NewSlidingWindow(60*time.Second, 6, slog.Default())
	start := time.Now()

	req.True(limiter.Admit("old", start))
	req.True(limiter.Admit("fresh", start.Add(50*time.Second)))
	req.Equal(2, limiter.Tracked())

	evicted := limiter.PruneIdle(start.Add(70 * time.Second))
	req.Equal(1, evicted)
	req.Equal(1, limiter.Tracked())

	// the evicted sender starts from a clean slate
	req.True(limiter.Admit("old", start.Add(71*time.Second)))
}

func TestSlidingWindow_Admit_Concurrent(t *testing.T) {
	req := require.New(t)
	limiter := NewSlidingWindow(60*time.Second, 6, slog.Default())
	now := time.Now()

	var wg sync.WaitGroup
	admitted := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admitted <- limiter.Admit("same-sender", now)
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for ok := range admitted {
		if ok {
			count++
		}
	}
	req.Equal(6, count, "concurrent requests must never exceed the cap")
}

func TestSlidingWindow_Defaults(t *testing.T) {
	req := require.New(t)
	limiter := NewSlidingWindow(0, 0, slog.Default())
	now := time.Now()

	for i := 0; i < DefaultMaxPerWindow; i++ {
		req.True(limiter.Admit("sender", now))
	}
	req.False(limiter.Admit("sender", now))
}
