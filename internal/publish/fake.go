package publish

import "github.com/lamxuanhung/binary-sensor/internal/register"

// Publication records one published register payload.
type Publication struct {
	ID      register.ID
	Name    string
	Payload []byte
}

// FakePublisher records published payloads for test assertions.
type FakePublisher struct {
	// Published contains every register publication in order.
	Published []Publication

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the register's current payload.
func (f *FakePublisher) Publish(reg register.Register) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	payload := reg.Payload()
	copied := make([]byte, len(payload))
	copy(copied, payload)

	f.Published = append(f.Published, Publication{
		ID:      reg.ID(),
		Name:    reg.Name(),
		Payload: copied,
	})
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Names returns the register names published so far, in order.
func (f *FakePublisher) Names() []string {
	names := make([]string, len(f.Published))
	for i, p := range f.Published {
		names[i] = p.Name
	}
	return names
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded publications.
func (f *FakePublisher) Reset() {
	f.Published = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
