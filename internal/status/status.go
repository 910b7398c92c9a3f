// Package status provides a thread-safe status tracker for the
// binary-sensor daemon. It is designed to be read by HTTP handlers and
// embedded in lifecycle event payloads.
package status

import (
	"sync"
	"time"

	"github.com/lamxuanhung/binary-sensor/internal/engine"
	"github.com/lamxuanhung/binary-sensor/internal/gpio"
)

// Config contains daemon configuration for display.
type Config struct {
	IntervalMs   int64
	Broker       string
	BaseTopic    string
	HTTPAddr     string
	Chip         string
	ModbusTarget string // empty = disabled
}

// WakeCounts tracks how often the node woke, and why, since startup.
type WakeCounts struct {
	Timer     int
	Interrupt int
	// Quiet counts interrupt wakes that resolved to no net change.
	Quiet int
}

// Pass describes one completed sampling pass for the tracker.
type Pass struct {
	Classification engine.Classification
	TimerWake      bool
	CounterStates  byte
	BinaryStates   byte
	Counters       [gpio.NumCounter]uint32
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	CounterStates byte
	BinaryStates  byte
	Counters      [gpio.NumCounter]uint32
	LastPass      string
	Seeded        bool
	Wakes         WakeCounts
	PublishErrors int
	VoltageMV     uint16
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// RecordPass sets pass results and wake accounting.
// Called from the scheduler after every sampling pass.
func (t *Tracker) RecordPass(p Pass) {
	t.mu.Lock()
	t.snap.CounterStates = p.CounterStates
	t.snap.BinaryStates = p.BinaryStates
	t.snap.Counters = p.Counters
	t.snap.LastPass = p.Classification.String()
	if t.snap.Seeded {
		if p.TimerWake {
			t.snap.Wakes.Timer++
		} else {
			t.snap.Wakes.Interrupt++
			if p.Classification == engine.NoChange {
				t.snap.Wakes.Quiet++
			}
		}
	} else {
		t.snap.Seeded = true
	}
	t.mu.Unlock()
}

// RecordPublishError counts a failed publish attempt.
func (t *Tracker) RecordPublishError() {
	t.mu.Lock()
	t.snap.PublishErrors++
	t.mu.Unlock()
}

// SetVoltage sets the last measured supply voltage.
func (t *Tracker) SetVoltage(mv uint16) {
	t.mu.Lock()
	t.snap.VoltageMV = mv
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
