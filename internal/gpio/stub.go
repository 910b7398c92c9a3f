//go:build !linux

package gpio

import "errors"

// LineReader is not available on non-Linux platforms.
type LineReader struct{}

// NewLineReader returns an error on non-Linux platforms.
func NewLineReader(chipName string, binaryLines, counterLines []int, onEdge func()) (*LineReader, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Snapshot is not implemented on non-Linux platforms.
func (r *LineReader) Snapshot() (Snapshot, error) {
	return Snapshot{}, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *LineReader) Close() error {
	return nil
}
