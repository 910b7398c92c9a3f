package scheduler

import (
	"context"
	"time"
)

// WakeCause distinguishes why a sleep ended.
type WakeCause int

const (
	WakeTimer WakeCause = iota
	WakeInterrupt
	WakeShutdown
)

// String returns the wake cause name for logs.
func (c WakeCause) String() string {
	switch c {
	case WakeTimer:
		return "timer"
	case WakeInterrupt:
		return "interrupt"
	case WakeShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Sleeper blocks until the report interval elapses or a wake is requested.
// This is the power-saving point of the loop, not a stall.
type Sleeper interface {
	Sleep(ctx context.Context) WakeCause
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context) WakeCause

// Sleep calls f.
func (f SleeperFunc) Sleep(ctx context.Context) WakeCause { return f(ctx) }

// IntervalSleeper sleeps until a fixed report interval elapses or Wake is
// called.
type IntervalSleeper struct {
	interval time.Duration
	wake     chan struct{}
}

// NewIntervalSleeper creates a sleeper with the given report interval.
func NewIntervalSleeper(interval time.Duration) *IntervalSleeper {
	return &IntervalSleeper{
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Wake requests an early wake. Safe to call from event-delivery context;
// never blocks, and multiple requests before the sleeper runs coalesce into
// one wake.
func (s *IntervalSleeper) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Sleep blocks until the interval elapses, Wake is called, or the context
// is canceled.
func (s *IntervalSleeper) Sleep(ctx context.Context) WakeCause {
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return WakeShutdown
	case <-s.wake:
		return WakeInterrupt
	case <-timer.C:
		return WakeTimer
	}
}
