package register

import (
	"bytes"
	"testing"

	"github.com/lamxuanhung/binary-sensor/internal/engine"
	"github.com/lamxuanhung/binary-sensor/internal/gpio"
)

// seededRegistry runs one engine pass over the given bitmaps so the
// registry holds real composed state.
func seededRegistry(t *testing.T, counterBits, binaryBits byte) *engine.Registry {
	t.Helper()
	reg := engine.NewRegistry()
	e := engine.New(gpio.NewFakeSampler([]gpio.Snapshot{gpio.Levels(counterBits, binaryBits)}), reg, engine.Config{})
	if _, err := e.Sample(); err != nil {
		t.Fatalf("seed sample: %v", err)
	}
	return reg
}

func TestVoltagePayload(t *testing.T) {
	adc := &FakeConverter{Raw: 341, BusyCycles: 3}
	v := NewVoltage(adc)

	payload := v.Payload()
	if len(payload) != VoltageSize {
		t.Fatalf("payload size = %d, want %d", len(payload), VoltageSize)
	}

	// 1126400 / 341 = 3303 mV = 0x0CE7, big-endian.
	if !bytes.Equal(payload, []byte{0x0C, 0xE7}) {
		t.Errorf("payload = %#v, want [0x0C 0xE7]", payload)
	}
	if adc.Started != 1 {
		t.Errorf("conversions started = %d, want 1", adc.Started)
	}
}

func TestVoltageZeroRawCodeYieldsSentinel(t *testing.T) {
	v := NewVoltage(&FakeConverter{Raw: 0})

	if mv := v.Millivolts(); mv != VoltageSentinel {
		t.Errorf("millivolts = %d, want sentinel %d", mv, VoltageSentinel)
	}
	if got := v.Payload(); !bytes.Equal(got, []byte{0xFF, 0xFF}) {
		t.Errorf("payload = %#v, want [0xFF 0xFF]", got)
	}
}

func TestVoltageNullConverter(t *testing.T) {
	v := NewVoltage(NullConverter{})
	if mv := v.Millivolts(); mv != VoltageSentinel {
		t.Errorf("millivolts = %d, want sentinel %d", mv, VoltageSentinel)
	}
}

func TestVoltageBusyWaitCompletes(t *testing.T) {
	adc := &FakeConverter{Raw: 512, BusyCycles: 100}
	v := NewVoltage(adc)

	// 1126400 / 512 = 2200 mV.
	if mv := v.Millivolts(); mv != 2200 {
		t.Errorf("millivolts = %d, want 2200", mv)
	}
}

func TestBinaryInputsPayload(t *testing.T) {
	reg := seededRegistry(t, 0x0A, 0xC3)
	b := NewBinaryInputs(reg)

	payload := b.Payload()
	if len(payload) != BinaryInputsSize {
		t.Fatalf("payload size = %d, want %d", len(payload), BinaryInputsSize)
	}
	// Counter-group byte first, plain-binary byte second.
	if payload[0] != 0x0A || payload[1] != 0xC3 {
		t.Errorf("payload = [%#02x %#02x], want [0x0a 0xc3]", payload[0], payload[1])
	}
}

func TestCountersPayloadLayout(t *testing.T) {
	// Counter 2 gets one pulse on the seed pass; all others stay zero.
	reg := seededRegistry(t, 0x04, 0x00)
	c := NewCounters(reg)

	payload := c.Payload()
	if len(payload) != CountersSize {
		t.Fatalf("payload size = %d, want %d", len(payload), CountersSize)
	}

	// Reversed counter order: slots are counters 3, 2, 1, 0. Counter 2
	// occupies bytes 4..7, big-endian.
	want := []byte{
		0, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	if !bytes.Equal(payload, want) {
		t.Errorf("payload = %v, want %v", payload, want)
	}
}

func TestCountersRoundTrip(t *testing.T) {
	reg := seededRegistry(t, 0x0F, 0x00) // every counter seeds to 1
	c := NewCounters(reg)

	payload := c.Payload()
	vals, err := DecodeCounters(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range vals {
		if v != 1 {
			t.Errorf("decoded counter %d = %d, want 1", i, v)
		}
	}

	// Re-serializing decoded values yields the original bytes.
	var buf [CountersSize]byte
	for i := 0; i < gpio.NumCounter; i++ {
		v := vals[gpio.NumCounter-1-i]
		buf[i*4] = byte(v >> 24)
		buf[i*4+1] = byte(v >> 16)
		buf[i*4+2] = byte(v >> 8)
		buf[i*4+3] = byte(v)
	}
	if !bytes.Equal(buf[:], payload) {
		t.Errorf("round-trip mismatch: %v vs %v", buf, payload)
	}
}

func TestDecodeCountersBadLength(t *testing.T) {
	if _, err := DecodeCounters(make([]byte, 15)); err == nil {
		t.Error("expected error for short payload")
	}
}

func TestRegisterIdentities(t *testing.T) {
	reg := engine.NewRegistry()
	cases := []struct {
		r    Register
		id   ID
		name string
	}{
		{NewVoltage(NullConverter{}), IDVoltage, "voltage"},
		{NewBinaryInputs(reg), IDBinaryInputs, "binary-inputs"},
		{NewCounters(reg), IDCounters, "counters"},
	}
	for _, c := range cases {
		if c.r.ID() != c.id {
			t.Errorf("%s: ID = %d, want %d", c.name, c.r.ID(), c.id)
		}
		if c.r.Name() != c.name {
			t.Errorf("Name = %q, want %q", c.r.Name(), c.name)
		}
	}
}
