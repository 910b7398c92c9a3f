package register

import "encoding/binary"

// VoltageSentinel is the millivolt value reported when the analog
// conversion returns a raw code of zero, which the back-calculation
// formula cannot express.
const VoltageSentinel uint16 = 0xFFFF

// Converter is a one-shot analog-to-digital conversion. Start begins a
// conversion, Busy reports whether it is still in progress, and Result
// returns the raw code once Busy is false.
type Converter interface {
	Start()
	Busy() bool
	Result() uint16
}

// Voltage reports the supply voltage in millivolts, back-calculated from a
// one-shot internal-reference conversion.
type Voltage struct {
	adc Converter
}

// NewVoltage creates a Voltage register reading through the given converter.
func NewVoltage(adc Converter) *Voltage {
	return &Voltage{adc: adc}
}

// ID returns the register's table position.
func (v *Voltage) ID() ID { return IDVoltage }

// Name returns the register name used in topics and logs.
func (v *Voltage) Name() string { return "voltage" }

// Millivolts runs one conversion and back-calculates the supply voltage.
// A raw code of zero yields the sentinel instead of a divide fault.
// The busy-wait is bounded by the conversion time, a few microseconds on
// real hardware.
func (v *Voltage) Millivolts() uint16 {
	v.adc.Start()
	for v.adc.Busy() {
	}
	raw := v.adc.Result()
	if raw == 0 {
		return VoltageSentinel
	}
	return uint16(1126400 / uint32(raw))
}

// Payload encodes the supply voltage as 2 bytes, big-endian millivolts.
func (v *Voltage) Payload() []byte {
	buf := make([]byte, VoltageSize)
	binary.BigEndian.PutUint16(buf, v.Millivolts())
	return buf
}
