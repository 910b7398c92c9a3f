package config

import (
	"time"

	"github.com/lamxuanhung/binary-sensor/internal/gpio"
	"github.com/lamxuanhung/binary-sensor/internal/publish"
)

// Defaults match the reference hardware: eight binary inputs, four
// counter inputs, a 15-minute heartbeat.
const (
	DefaultChip       = "gpiochip0"
	DefaultIntervalMs = 15 * 60 * 1000
	DefaultBroker     = "tcp://192.168.1.200:1883"
	DefaultClientID   = "binary-sensor"
	DefaultTimeoutMs  = 5000
)

// Normalize fills unset fields with defaults. Missing modbus offsets keep
// their zero values only when the whole block is absent.
func (c *Config) Normalize() {
	n := &c.Node

	if n.GPIO.Chip == "" {
		n.GPIO.Chip = DefaultChip
	}
	if n.GPIO.BinaryLines == nil {
		n.GPIO.BinaryLines = append([]int(nil), gpio.DefaultBinaryLines...)
	}
	if n.GPIO.CounterLines == nil {
		n.GPIO.CounterLines = append([]int(nil), gpio.DefaultCounterLines...)
	}

	if n.Report.IntervalMs == 0 {
		n.Report.IntervalMs = DefaultIntervalMs
	}

	if n.MQTT.Broker == "" {
		n.MQTT.Broker = DefaultBroker
	}
	if n.MQTT.ClientID == "" {
		n.MQTT.ClientID = DefaultClientID
	}
	if n.MQTT.BaseTopic == "" {
		n.MQTT.BaseTopic = publish.DefaultBaseTopic
	}

	if n.Modbus != nil && n.Modbus.TimeoutMs == 0 {
		n.Modbus.TimeoutMs = DefaultTimeoutMs
	}
}

// Interval returns the report interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Node.Report.IntervalMs) * time.Millisecond
}

// Timeout returns the modbus connect/write timeout as a duration.
func (m *ModbusConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}
