package scheduler

import "sync/atomic"

// Flag is the pending-interrupt flag, the single piece of state shared
// between event-delivery context and the main flow. Trigger runs in the
// edge handler; everything else runs in the scheduler loop.
//
// While disabled, triggers are dropped rather than deferred. This is the
// software equivalent of masking pin-change interrupts for the duration of
// a sampling pass: no new wake can be observed mid-pass.
type Flag struct {
	pending atomic.Bool
	enabled atomic.Bool
	notify  func()
}

// NewFlag creates a disabled flag. notify, if non-nil, is invoked on every
// accepted trigger (wired to the sleeper's Wake). The scheduler enables the
// flag once the seed pass has been published.
func NewFlag(notify func()) *Flag {
	return &Flag{notify: notify}
}

// Trigger marks a line-change interrupt and requests a wake. It does no
// sampling: all state-composition work is deferred to the main flow.
func (f *Flag) Trigger() {
	if !f.enabled.Load() {
		return
	}
	f.pending.Store(true)
	if f.notify != nil {
		f.notify()
	}
}

// Enable re-arms the flag for new triggers.
func (f *Flag) Enable() { f.enabled.Store(true) }

// Disable masks new triggers.
func (f *Flag) Disable() { f.enabled.Store(false) }

// Pending reports whether an interrupt is owed a sampling pass.
func (f *Flag) Pending() bool { return f.pending.Load() }

// Clear resets the pending state once the pass that consumed it is done.
func (f *Flag) Clear() { f.pending.Store(false) }
