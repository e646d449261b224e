package llm

import (
	"context"
	"sync"
	"time"

	"socialmetrics-backend/internal/shared/telemetry"
)

// Clock is the time source used by WindowLimiter.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// WindowLimiter admits at most Max calls within any rolling Window.
type WindowLimiter struct {
	mu     sync.Mutex
	clock  Clock
	window time.Duration
	max    int
	calls  []time.Time
}

// NewWindowLimiter builds a limiter. A nil clock uses the wall clock;
// non-positive max or window disable limiting.
func NewWindowLimiter(max int, window time.Duration, clock Clock) *WindowLimiter {
	if clock == nil {
		clock = systemClock{}
	}
	return &WindowLimiter{
		clock:  clock,
		window: window,
		max:    max,
	}
}

// Acquire records a call, first waiting until fewer than Max calls remain in the window.
func (l *WindowLimiter) Acquire(ctx context.Context) error {
	if l == nil || l.max <= 0 || l.window <= 0 {
		return nil
	}
	for {
		wait, ok := l.tryAcquire()
		if ok {
			return nil
		}
		telemetry.Info("llm.rate_limited", map[string]any{
			"wait_ms":  wait.Milliseconds(),
			"max":      l.max,
			"window_s": l.window.Seconds(),
		})
		select {
		case <-l.clock.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// InWindow reports how many calls are currently inside the window.
func (l *WindowLimiter) InWindow() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.evict(l.clock.Now())
	return len(l.calls)
}

func (l *WindowLimiter) tryAcquire() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock.Now()
	l.evict(now)
	if len(l.calls) < l.max {
		l.calls = append(l.calls, now)
		return 0, true
	}
	wait := l.calls[0].Add(l.window).Sub(now)
	if wait <= 0 {
		wait = time.Millisecond
	}
	return wait, false
}

func (l *WindowLimiter) evict(now time.Time) {
	keep := 0
	for _, ts := range l.calls {
		if now.Sub(ts) < l.window {
			l.calls[keep] = ts
			keep++
		}
	}
	l.calls = l.calls[:keep]
}
