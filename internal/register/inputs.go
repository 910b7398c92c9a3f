package register

import (
	"encoding/binary"
	"fmt"

	"github.com/lamxuanhung/binary-sensor/internal/engine"
	"github.com/lamxuanhung/binary-sensor/internal/gpio"
)

// BinaryInputs reports the two composed state bytes from the most recent
// sampling pass. It copies, never recomputes: the caller must have already
// run a pass.
type BinaryInputs struct {
	reg *engine.Registry
}

// NewBinaryInputs creates a BinaryInputs register over the given registry.
func NewBinaryInputs(reg *engine.Registry) *BinaryInputs {
	return &BinaryInputs{reg: reg}
}

// ID returns the register's table position.
func (b *BinaryInputs) ID() ID { return IDBinaryInputs }

// Name returns the register name used in topics and logs.
func (b *BinaryInputs) Name() string { return "binary-inputs" }

// Payload returns [counter-group byte, plain-binary byte].
func (b *BinaryInputs) Payload() []byte {
	counter, plain := b.reg.StateBytes()
	return []byte{counter, plain}
}

// Counters reports the four pulse counters. The wire layout is a
// compatibility contract: counter order is reversed (index 3 first) and
// each counter is big-endian within its 4-byte slot.
type Counters struct {
	reg *engine.Registry
}

// NewCounters creates a Counters register over the given registry.
func NewCounters(reg *engine.Registry) *Counters {
	return &Counters{reg: reg}
}

// ID returns the register's table position.
func (c *Counters) ID() ID { return IDCounters }

// Name returns the register name used in topics and logs.
func (c *Counters) Name() string { return "counters" }

// Payload serializes the counters into 16 bytes.
func (c *Counters) Payload() []byte {
	vals := c.reg.Counters()
	buf := make([]byte, CountersSize)
	for i := 0; i < gpio.NumCounter; i++ {
		binary.BigEndian.PutUint32(buf[i*4:], vals[gpio.NumCounter-1-i])
	}
	return buf
}

// DecodeCounters reverses the Counters payload layout back into counter
// values in index order.
func DecodeCounters(payload []byte) ([gpio.NumCounter]uint32, error) {
	var vals [gpio.NumCounter]uint32
	if len(payload) != CountersSize {
		return vals, fmt.Errorf("counters payload: got %d bytes, want %d", len(payload), CountersSize)
	}
	for i := 0; i < gpio.NumCounter; i++ {
		vals[gpio.NumCounter-1-i] = binary.BigEndian.Uint32(payload[i*4:])
	}
	return vals, nil
}
