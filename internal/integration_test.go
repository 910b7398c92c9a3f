package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/lamxuanhung/binary-sensor/internal/engine"
	"github.com/lamxuanhung/binary-sensor/internal/gpio"
	"github.com/lamxuanhung/binary-sensor/internal/publish"
	"github.com/lamxuanhung/binary-sensor/internal/register"
	"github.com/lamxuanhung/binary-sensor/internal/scheduler"
	"github.com/lamxuanhung/binary-sensor/internal/status"
)

// TestIntegrationFullCycle drives the scheduler through startup, a pulse, a
// quiet wake, and a heartbeat using fakes end to end.
func TestIntegrationFullCycle(t *testing.T) {
	sampler := gpio.NewFakeSampler([]gpio.Snapshot{
		gpio.Levels(0x00, 0x12), // startup: binary lines 1 and 4 high
	})
	pub := publish.NewFakePublisher()
	tracker := status.NewTracker(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), status.Config{})

	sleeper := scheduler.NewIntervalSleeper(time.Hour)
	irq := scheduler.NewFlag(sleeper.Wake)

	registry := engine.NewRegistry()
	eng := engine.New(sampler, registry, engine.Config{})

	adc := &register.FakeConverter{Raw: 375} // 1126400/375 = 3003 mV

	wakes := []func() scheduler.WakeCause{
		// Pulse on counter line 0.
		func() scheduler.WakeCause {
			sampler.Push(gpio.Levels(0x01, 0x12))
			irq.Trigger()
			return scheduler.WakeInterrupt
		},
		// Edge resolved back to the same levels: quiet wake.
		func() scheduler.WakeCause {
			sampler.Push(gpio.Levels(0x01, 0x12))
			irq.Trigger()
			return scheduler.WakeInterrupt
		},
		// Periodic heartbeat.
		func() scheduler.WakeCause {
			return scheduler.WakeTimer
		},
	}
	step := 0
	script := scheduler.SleeperFunc(func(context.Context) scheduler.WakeCause {
		if step >= len(wakes) {
			return scheduler.WakeShutdown
		}
		w := wakes[step]
		step++
		return w()
	})

	sched := scheduler.New(eng, irq, script, pub,
		register.NewVoltage(adc),
		register.NewBinaryInputs(registry),
		register.NewCounters(registry),
		tracker)

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantNames := []string{
		"voltage", "binary-inputs", "counters", // startup report
		"counters", "binary-inputs", // pulse: counters before binary
		// quiet wake publishes nothing
		"counters", "binary-inputs", // heartbeat
	}
	if got := pub.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("publish sequence = %v, want %v", got, wantNames)
	}

	// Startup voltage: 3003 mV big-endian.
	if !bytes.Equal(pub.Published[0].Payload, []byte{0x0B, 0xBB}) {
		t.Errorf("voltage payload = %v", pub.Published[0].Payload)
	}

	// Startup binary-inputs: counter byte then plain byte.
	if !bytes.Equal(pub.Published[1].Payload, []byte{0x00, 0x12}) {
		t.Errorf("startup binary-inputs payload = %v", pub.Published[1].Payload)
	}

	// Pulse report carries counter 0 = 1 in the reversed layout.
	wantCounters := []byte{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 1,
	}
	if !bytes.Equal(pub.Published[3].Payload, wantCounters) {
		t.Errorf("pulse counters payload = %v", pub.Published[3].Payload)
	}

	// Heartbeat repeats the same counters unchanged.
	if !bytes.Equal(pub.Published[5].Payload, wantCounters) {
		t.Errorf("heartbeat counters payload = %v", pub.Published[5].Payload)
	}

	snap := tracker.Snapshot()
	if snap.Wakes != (status.WakeCounts{Timer: 1, Interrupt: 2, Quiet: 1}) {
		t.Errorf("wakes = %+v", snap.Wakes)
	}
	if snap.Counters[0] != 1 {
		t.Errorf("tracker counter 0 = %d", snap.Counters[0])
	}
}

// TestIntegrationStatusEventPayload checks the lifecycle payload carries
// the tracker snapshot the way subscribers consume it.
func TestIntegrationStatusEventPayload(t *testing.T) {
	tracker := status.NewTracker(time.Now(), status.Config{Broker: "tcp://broker:1883"})
	tracker.RecordPass(status.Pass{
		Classification: engine.BinaryChanged,
		BinaryStates:   0x03,
	})

	pub := publish.NewFakePublisher()
	snap := tracker.Snapshot()
	err := pub.PublishSystem(publish.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	})
	if err != nil {
		t.Fatalf("publish system: %v", err)
	}

	var parsed status.StatusJSON
	if err := json.Unmarshal(pub.SystemPayloads[0], &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "STARTUP" {
		t.Errorf("event = %q", parsed.Status.Event)
	}
	if parsed.Status.BinaryStates != "00000011" {
		t.Errorf("binary_states = %q", parsed.Status.BinaryStates)
	}
	if parsed.Status.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("broker = %q", parsed.Status.MQTT.Broker)
	}
}

// TestIntegrationCountersSurviveManyCycles accumulates pulses across many
// sleep/wake cycles without reset.
func TestIntegrationCountersSurviveManyCycles(t *testing.T) {
	sampler := gpio.NewFakeSampler([]gpio.Snapshot{gpio.Levels(0x00, 0x00)})
	pub := publish.NewFakePublisher()

	sleeper := scheduler.NewIntervalSleeper(time.Hour)
	irq := scheduler.NewFlag(sleeper.Wake)

	registry := engine.NewRegistry()
	eng := engine.New(sampler, registry, engine.Config{})

	const pulses = 50
	step := 0
	script := scheduler.SleeperFunc(func(context.Context) scheduler.WakeCause {
		if step >= pulses*2 {
			return scheduler.WakeShutdown
		}
		if step%2 == 0 {
			sampler.Push(gpio.Levels(0x02, 0x00))
		} else {
			sampler.Push(gpio.Levels(0x00, 0x00))
		}
		step++
		irq.Trigger()
		return scheduler.WakeInterrupt
	})

	sched := scheduler.New(eng, irq, script, pub,
		register.NewVoltage(register.NullConverter{}),
		register.NewBinaryInputs(registry),
		register.NewCounters(registry),
		nil)

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := registry.Counters()[1]; got != pulses {
		t.Errorf("counter 1 = %d, want %d", got, pulses)
	}
}
