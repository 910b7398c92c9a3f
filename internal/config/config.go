// Package config loads and checks the daemon configuration. The YAML file
// is optional: a node wired like the reference hardware runs on defaults
// alone, and a handful of command-line flags can override the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Node NodeConfig `yaml:"node"`
}

type NodeConfig struct {
	GPIO   GPIOConfig    `yaml:"gpio"`
	Report ReportConfig  `yaml:"report"`
	MQTT   MQTTConfig    `yaml:"mqtt"`
	Modbus *ModbusConfig `yaml:"modbus"` // optional mirror target
	ADC    ADCConfig     `yaml:"adc"`
	HTTP   HTTPConfig    `yaml:"http"`
}

// ---- GPIO ----

type GPIOConfig struct {
	Chip         string `yaml:"chip"`
	BinaryLines  []int  `yaml:"binary_lines"`
	CounterLines []int  `yaml:"counter_lines"`

	// ActiveLow counts pulses on falling edges instead of rising ones.
	ActiveLow bool `yaml:"active_low"`

	// SuppressSeedCount skips the count a counter line earns when its
	// resting level at startup is already the active level.
	SuppressSeedCount bool `yaml:"suppress_seed_count"`
}

// ---- REPORT ----

type ReportConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Broker    string `yaml:"broker"`
	ClientID  string `yaml:"client_id"`
	BaseTopic string `yaml:"base_topic"`
}

// ---- MODBUS ----

type ModbusConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	UnitID    uint8         `yaml:"unit_id"`
	TimeoutMs int           `yaml:"timeout_ms"`
	Offsets   OffsetsConfig `yaml:"offsets"`
}

// OffsetsConfig maps each register to a holding-register address.
type OffsetsConfig struct {
	Voltage      uint16 `yaml:"voltage"`
	BinaryInputs uint16 `yaml:"binary_inputs"`
	Counters     uint16 `yaml:"counters"`
}

// ---- ADC ----

type ADCConfig struct {
	// IIOPath is the sysfs raw attribute of the supply-voltage channel.
	// Empty disables analog measurement; the voltage register then
	// reports its sentinel.
	IIOPath string `yaml:"iio_path"`
}

// ---- HTTP ----

type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the status server
}

// Load reads and parses the YAML file at path, fills defaults, and
// validates. An empty path yields the default configuration.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
