// Package gpio provides input-line sampling with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Level is the sampled logic level of one input line.
// Unknown is only ever a last-known value, never a sampled one.
type Level int8

const (
	LevelUnknown Level = -1
	LevelLow     Level = 0
	LevelHigh    Level = 1
)

// String returns LOW, HIGH or UNKNOWN.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "LOW"
	case LevelHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Group sizes are fixed by the register layout: one byte of plain binary
// inputs and one byte of counter-capable inputs carrying pulse counters.
const (
	NumBinary  = 8
	NumCounter = 4
)

// Snapshot holds the levels of every monitored line from one sampling pass.
type Snapshot struct {
	// Binary holds the plain-binary group, index = bit position.
	Binary [NumBinary]Level
	// Counter holds the counter-capable group, index = bit position.
	Counter [NumCounter]Level
}

// Sampler reads the instantaneous levels of all monitored lines.
type Sampler interface {
	// Snapshot returns the current level of every line. It performs no
	// edge detection and has no side effects on event delivery.
	Snapshot() (Snapshot, error)

	// Close releases line resources.
	Close() error
}

// Default line offsets (BCM numbering): eight plain binary inputs and four
// counter-capable inputs.
var (
	DefaultBinaryLines  = []int{5, 6, 12, 13, 16, 19, 20, 21}
	DefaultCounterLines = []int{18, 23, 24, 25}
)
