package config

import (
	"fmt"

	"github.com/lamxuanhung/binary-sensor/internal/gpio"
)

// Validate checks structural constraints after normalization.
func (c *Config) Validate() error {
	n := &c.Node

	if len(n.GPIO.BinaryLines) > gpio.NumBinary {
		return fmt.Errorf("gpio: %d binary lines, register byte holds %d", len(n.GPIO.BinaryLines), gpio.NumBinary)
	}
	if len(n.GPIO.CounterLines) > gpio.NumCounter {
		return fmt.Errorf("gpio: %d counter lines, register layout holds %d", len(n.GPIO.CounterLines), gpio.NumCounter)
	}

	seen := make(map[int]bool)
	for _, offset := range append(append([]int(nil), n.GPIO.BinaryLines...), n.GPIO.CounterLines...) {
		if offset < 0 {
			return fmt.Errorf("gpio: negative line offset %d", offset)
		}
		if seen[offset] {
			return fmt.Errorf("gpio: line offset %d used twice", offset)
		}
		seen[offset] = true
	}

	if n.Report.IntervalMs < 0 {
		return fmt.Errorf("report: negative interval %dms", n.Report.IntervalMs)
	}

	if n.Modbus != nil {
		if n.Modbus.Endpoint == "" {
			return fmt.Errorf("modbus: endpoint required when the block is present")
		}
		o := n.Modbus.Offsets
		// Windows in holding-register words: voltage 1, inputs 1, counters 8.
		windows := []struct {
			name  string
			start uint16
			size  uint16
		}{
			{"voltage", o.Voltage, 1},
			{"binary_inputs", o.BinaryInputs, 1},
			{"counters", o.Counters, 8},
		}
		for i, a := range windows {
			for _, b := range windows[i+1:] {
				if a.start < b.start+b.size && b.start < a.start+a.size {
					return fmt.Errorf("modbus: offsets %s and %s overlap", a.name, b.name)
				}
			}
		}
	}

	return nil
}
