package main

import (
	"testing"
	"time"

	"github.com/lamxuanhung/binary-sensor/internal/config"
	"github.com/lamxuanhung/binary-sensor/internal/gpio"
)

func loadedDefaults(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	return cfg
}

func TestApplyOverrides(t *testing.T) {
	cfg := loadedDefaults(t)
	cfg.Node.HTTP.Addr = ":80"

	applyOverrides(&cfg, "tcp://other:1883", 30*time.Second, ":9090")

	if cfg.Node.MQTT.Broker != "tcp://other:1883" {
		t.Errorf("broker = %q", cfg.Node.MQTT.Broker)
	}
	if cfg.Node.Report.IntervalMs != 30000 {
		t.Errorf("interval_ms = %d", cfg.Node.Report.IntervalMs)
	}
	if cfg.Node.HTTP.Addr != ":9090" {
		t.Errorf("http addr = %q", cfg.Node.HTTP.Addr)
	}
}

func TestApplyOverridesKeepsConfig(t *testing.T) {
	cfg := loadedDefaults(t)
	wantBroker := cfg.Node.MQTT.Broker
	wantInterval := cfg.Node.Report.IntervalMs
	cfg.Node.HTTP.Addr = ":80"

	applyOverrides(&cfg, "", 0, "")

	if cfg.Node.MQTT.Broker != wantBroker {
		t.Errorf("broker changed: %q", cfg.Node.MQTT.Broker)
	}
	if cfg.Node.Report.IntervalMs != wantInterval {
		t.Errorf("interval changed: %d", cfg.Node.Report.IntervalMs)
	}
	if cfg.Node.HTTP.Addr != ":80" {
		t.Errorf("http addr changed: %q", cfg.Node.HTTP.Addr)
	}
}

func TestApplyOverridesHTTPOff(t *testing.T) {
	cfg := loadedDefaults(t)
	cfg.Node.HTTP.Addr = ":80"

	applyOverrides(&cfg, "", 0, "off")

	if cfg.Node.HTTP.Addr != "" {
		t.Errorf("http addr = %q, want disabled", cfg.Node.HTTP.Addr)
	}
}

func TestFormatSnapshot(t *testing.T) {
	got := formatSnapshot(gpio.Levels(0x05, 0x81))
	want := "counters=00000101 binary=10000001"
	if got != want {
		t.Errorf("formatSnapshot = %q, want %q", got, want)
	}
}
