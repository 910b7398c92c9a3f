package status

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	CounterStates string     `json:"counter_states"`
	BinaryStates  string     `json:"binary_states"`
	Counters      []uint32   `json:"counters"`
	LastPass      string     `json:"last_pass"`
	Ready         bool       `json:"ready"`
	VoltageMV     uint16     `json:"voltage_mv"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Wakes         WakesJSON  `json:"wakes"`
	PublishErrors int        `json:"publish_errors"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// WakesJSON is the JSON representation of wake accounting.
type WakesJSON struct {
	Timer     int `json:"timer"`
	Interrupt int `json:"interrupt"`
	Quiet     int `json:"quiet"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	IntervalMs   int64  `json:"interval_ms"`
	Broker       string `json:"broker"`
	BaseTopic    string `json:"base_topic"`
	HTTPAddr     string `json:"http_addr"`
	Chip         string `json:"chip"`
	ModbusTarget string `json:"modbus_target,omitempty"`
}

// BitString renders a state byte as bits, line 7 down to line 0.
func BitString(b byte) string {
	return fmt.Sprintf("%08b", b)
}

func buildInner(snap Snapshot) StatusInner {
	lastPass := snap.LastPass
	if lastPass == "" {
		lastPass = "NONE"
	}

	return StatusInner{
		CounterStates: BitString(snap.CounterStates),
		BinaryStates:  BitString(snap.BinaryStates),
		Counters:      snap.Counters[:],
		LastPass:      lastPass,
		Ready:         snap.Seeded,
		VoltageMV:     snap.VoltageMV,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Wakes: WakesJSON{
			Timer:     snap.Wakes.Timer,
			Interrupt: snap.Wakes.Interrupt,
			Quiet:     snap.Wakes.Quiet,
		},
		PublishErrors: snap.PublishErrors,
		Config: ConfigJSON{
			IntervalMs:   snap.Config.IntervalMs,
			Broker:       snap.Config.Broker,
			BaseTopic:    snap.Config.BaseTopic,
			HTTPAddr:     snap.Config.HTTPAddr,
			Chip:         snap.Config.Chip,
			ModbusTarget: snap.Config.ModbusTarget,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
