// Package publish delivers register payloads to external transports with
// abstraction for testing. Publishing is fire-and-forget from the
// scheduler's perspective: failures are reported but never change what the
// node samples or counts.
package publish

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lamxuanhung/binary-sensor/internal/register"
)

// Publisher pushes the current payload of a register to a transport.
type Publisher interface {
	// Publish serializes the register and sends its payload.
	// Returns error if delivery fails (should not crash the process).
	Publish(reg register.Register) error

	// PublishSystem sends a system lifecycle event.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the transport.
	Close() error
}

// ConnectionStatus reports whether a transport connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a node lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g. "STARTUP", "SHUTDOWN"
	Reason     string // e.g. "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// SystemPayload is the JSON envelope for simple system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// Multi fans a publish out to several transports. Every transport is
// attempted; errors are joined.
type Multi []Publisher

// Publish sends the register to every transport.
func (m Multi) Publish(reg register.Register) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(reg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishSystem sends the event to every transport.
func (m Multi) PublishSystem(event SystemEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishSystem(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every transport.
func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
