package engine

import (
	"fmt"

	"github.com/lamxuanhung/binary-sensor/internal/gpio"
)

// Config adjusts counting behavior.
type Config struct {
	// ActiveLow counts pulses on the arrival of LOW instead of HIGH.
	// Off by default: a rising edge counts.
	ActiveLow bool

	// SuppressSeedCount skips the pulse count a counter line would earn on
	// the very first pass when its resting level is already the active
	// level. Off by default: the first observation is treated exactly like
	// any other transition.
	SuppressSeedCount bool
}

// Engine compares sampled levels against the Registry's last-known state,
// rebuilds the state bytes, and accumulates pulse counts.
type Engine struct {
	sampler gpio.Sampler
	reg     *Registry
	active  gpio.Level
	cfg     Config
}

// New creates an Engine that samples through s and mutates reg.
func New(s gpio.Sampler, reg *Registry, cfg Config) *Engine {
	active := gpio.LevelHigh
	if cfg.ActiveLow {
		active = gpio.LevelLow
	}
	return &Engine{sampler: s, reg: reg, active: active, cfg: cfg}
}

// Registry returns the engine's state registry.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// Sample takes one snapshot of every monitored line and classifies it
// against the last-known state. The returned error can only come from the
// hardware read; the classification pass itself is total. On error no state
// is mutated.
func (e *Engine) Sample() (Classification, error) {
	snap, err := e.sampler.Snapshot()
	if err != nil {
		return NoChange, fmt.Errorf("sample lines: %w", err)
	}
	return e.apply(snap), nil
}

// apply runs one classification pass over a snapshot. Lines are evaluated
// in index order; at most one count per counter line per pass, edges
// between passes are coalesced.
func (e *Engine) apply(snap gpio.Snapshot) Classification {
	res := NoChange

	// The state bytes are rebuilt in full every pass, changed or not, so
	// they never mix bits from different passes.
	var binary byte
	for i, level := range snap.Binary {
		binary |= levelBit(level) << i
		if e.reg.lastBinary[i] != level {
			e.reg.lastBinary[i] = level
			if res < BinaryChanged {
				res = BinaryChanged
			}
		}
	}

	var counter byte
	for i, level := range snap.Counter {
		counter |= levelBit(level) << i
		if e.reg.lastCounter[i] != level {
			seeding := e.reg.lastCounter[i] == gpio.LevelUnknown
			e.reg.lastCounter[i] = level
			if res < BinaryChanged {
				res = BinaryChanged
			}
			if level == e.active && !(seeding && e.cfg.SuppressSeedCount) {
				e.reg.counters[i]++ // wraps silently at 2^32
				res = CountersChanged
			}
		}
	}

	e.reg.stateBinary = binary
	e.reg.stateCounter = counter
	return res
}

func levelBit(l gpio.Level) byte {
	if l == gpio.LevelHigh {
		return 1
	}
	return 0
}
