// Package engine implements change detection and pulse-counter accumulation
// over the monitored input lines. The classify pass is pure: hardware access
// happens only through the injected Sampler, and a pass over an
// already-taken snapshot cannot fail.
package engine

import "github.com/lamxuanhung/binary-sensor/internal/gpio"

// Classification summarizes what a sampling pass changed. A counter change
// always implies a binary change, so the values are ordered and a pass
// reports the maximum reached across all lines.
type Classification int

const (
	NoChange Classification = iota
	BinaryChanged
	CountersChanged
)

// String returns the classification name for logs.
func (c Classification) String() string {
	switch c {
	case NoChange:
		return "NO_CHANGE"
	case BinaryChanged:
		return "BINARY_CHANGED"
	case CountersChanged:
		return "COUNTERS_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// Registry owns all mutable sampling state: last-known levels, pulse
// counters, and the two composed state bytes. It has a single writer, the
// Engine, and lives for the process lifetime.
type Registry struct {
	lastBinary  [gpio.NumBinary]gpio.Level
	lastCounter [gpio.NumCounter]gpio.Level
	counters    [gpio.NumCounter]uint32

	// Composed on every pass: bit i = level of line i in its group.
	stateCounter byte
	stateBinary  byte
}

// NewRegistry creates a Registry with all levels unknown and counters zero.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.lastBinary {
		r.lastBinary[i] = gpio.LevelUnknown
	}
	for i := range r.lastCounter {
		r.lastCounter[i] = gpio.LevelUnknown
	}
	return r
}

// StateBytes returns the composed state bytes from the most recent pass:
// counter-group byte first, then the plain-binary byte.
func (r *Registry) StateBytes() (counter, binary byte) {
	return r.stateCounter, r.stateBinary
}

// Counters returns the current pulse counter values.
func (r *Registry) Counters() [gpio.NumCounter]uint32 {
	return r.counters
}
