//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// LineReader samples real hardware lines through the Linux GPIO character
// device. Every line is requested with both-edge event detection so the
// same request serves level sampling and interrupt wake-up: the onEdge
// callback runs in event-delivery context and must only flag and return.
type LineReader struct {
	chip    *gpiocdev.Chip
	binary  []*gpiocdev.Line
	counter []*gpiocdev.Line
}

// NewLineReader requests the given binary and counter line offsets on the
// named chip. onEdge is invoked on every edge of any requested line; it may
// be nil when edge wake-up is not wanted (print-state mode).
func NewLineReader(chipName string, binaryLines, counterLines []int, onEdge func()) (*LineReader, error) {
	if len(binaryLines) > NumBinary {
		return nil, fmt.Errorf("too many binary lines: %d (max %d)", len(binaryLines), NumBinary)
	}
	if len(counterLines) > NumCounter {
		return nil, fmt.Errorf("too many counter lines: %d (max %d)", len(counterLines), NumCounter)
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	r := &LineReader{chip: chip}

	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullDown}
	if onEdge != nil {
		opts = append(opts,
			gpiocdev.WithBothEdges,
			gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onEdge() }))
	}

	for _, offset := range binaryLines {
		line, err := chip.RequestLine(offset, opts...)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request binary line %d: %w", offset, err)
		}
		r.binary = append(r.binary, line)
	}
	for _, offset := range counterLines {
		line, err := chip.RequestLine(offset, opts...)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request counter line %d: %w", offset, err)
		}
		r.counter = append(r.counter, line)
	}

	return r, nil
}

// Snapshot reads the current level of every requested line.
// Unrequested positions in a group stay LOW.
func (r *LineReader) Snapshot() (Snapshot, error) {
	var snap Snapshot
	for i, line := range r.binary {
		v, err := line.Value()
		if err != nil {
			return Snapshot{}, fmt.Errorf("read binary line %d: %w", i, err)
		}
		snap.Binary[i] = rawLevel(v)
	}
	for i, line := range r.counter {
		v, err := line.Value()
		if err != nil {
			return Snapshot{}, fmt.Errorf("read counter line %d: %w", i, err)
		}
		snap.Counter[i] = rawLevel(v)
	}
	return snap, nil
}

func rawLevel(v int) Level {
	if v == 0 {
		return LevelLow
	}
	return LevelHigh
}

// Close releases all requested lines and the chip. Lines are reconfigured
// to input with pull-down first so external hardware sees boot defaults.
func (r *LineReader) Close() error {
	var errs []error
	for _, line := range append(r.binary, r.counter...) {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
