// Command binary-sensor monitors digital input lines, counts pulses, and
// publishes fixed-layout register payloads on line changes and periodic
// heartbeats.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lamxuanhung/binary-sensor/internal/config"
	"github.com/lamxuanhung/binary-sensor/internal/engine"
	"github.com/lamxuanhung/binary-sensor/internal/gpio"
	"github.com/lamxuanhung/binary-sensor/internal/publish"
	"github.com/lamxuanhung/binary-sensor/internal/register"
	"github.com/lamxuanhung/binary-sensor/internal/scheduler"
	"github.com/lamxuanhung/binary-sensor/internal/status"
	"github.com/lamxuanhung/binary-sensor/internal/web"
)

func main() {
	configPath := flag.String("config", "", "YAML config path (empty for defaults)")
	broker := flag.String("broker", "", "MQTT broker override")
	interval := flag.Duration("interval", 0, "Report interval override (0 uses config)")
	httpAddr := flag.String("http", "", `HTTP status address override ("off" disables)`)
	printState := flag.Bool("print-state", false, "Print current input levels and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	applyOverrides(&cfg, *broker, *interval, *httpAddr)

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// applyOverrides folds command-line overrides into the loaded config.
func applyOverrides(cfg *config.Config, broker string, interval time.Duration, httpAddr string) {
	if broker != "" {
		cfg.Node.MQTT.Broker = broker
	}
	if interval > 0 {
		cfg.Node.Report.IntervalMs = int(interval.Milliseconds())
	}
	switch httpAddr {
	case "":
		// keep config value
	case "off":
		cfg.Node.HTTP.Addr = ""
	default:
		cfg.Node.HTTP.Addr = httpAddr
	}
}

func run(cfg config.Config, printState bool) error {
	node := cfg.Node

	sleeper := scheduler.NewIntervalSleeper(cfg.Interval())
	irq := scheduler.NewFlag(sleeper.Wake)

	// One line request serves both sampling and edge wake-up.
	var onEdge func()
	if !printState {
		onEdge = irq.Trigger
	}
	sampler, err := gpio.NewLineReader(node.GPIO.Chip, node.GPIO.BinaryLines, node.GPIO.CounterLines, onEdge)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer sampler.Close()

	// Print state mode
	if printState {
		snap, err := sampler.Snapshot()
		if err != nil {
			return fmt.Errorf("read lines: %w", err)
		}
		fmt.Println(formatSnapshot(snap))
		return nil
	}

	registry := engine.NewRegistry()
	eng := engine.New(sampler, registry, engine.Config{
		ActiveLow:         node.GPIO.ActiveLow,
		SuppressSeedCount: node.GPIO.SuppressSeedCount,
	})

	var adc register.Converter = register.NullConverter{}
	if node.ADC.IIOPath != "" {
		adc = register.NewIIOConverter(node.ADC.IIOPath)
	}
	voltage := register.NewVoltage(adc)
	inputs := register.NewBinaryInputs(registry)
	counters := register.NewCounters(registry)

	// Transports: MQTT always, modbus mirror when configured.
	mqttPub, err := publish.NewMQTTPublisher(node.MQTT.Broker, node.MQTT.ClientID, node.MQTT.BaseTopic)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	pubs := publish.Multi{mqttPub}

	modbusTarget := ""
	if node.Modbus != nil {
		mb, err := publish.NewModbusPublisher(node.Modbus.Endpoint, node.Modbus.UnitID, node.Modbus.Timeout(),
			map[register.ID]uint16{
				register.IDVoltage:      node.Modbus.Offsets.Voltage,
				register.IDBinaryInputs: node.Modbus.Offsets.BinaryInputs,
				register.IDCounters:     node.Modbus.Offsets.Counters,
			})
		if err != nil {
			// The radio side stays up even when the mirror target is down.
			log.Printf("modbus mirror disabled: %v", err)
		} else {
			pubs = append(pubs, mb)
			modbusTarget = node.Modbus.Endpoint
		}
	}
	defer pubs.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		IntervalMs:   int64(node.Report.IntervalMs),
		Broker:       node.MQTT.Broker,
		BaseTopic:    node.MQTT.BaseTopic,
		HTTPAddr:     node.HTTP.Addr,
		Chip:         node.GPIO.Chip,
		ModbusTarget: modbusTarget,
	})
	tracker.SetMQTTConnected(mqttPub.IsConnected())
	tracker.SetVoltage(voltage.Millivolts())

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := publish.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := pubs.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if node.HTTP.Addr != "" {
		srv := web.New(node.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", node.HTTP.Addr)
	}

	log.Printf("started: chip=%s interval=%v broker=%s modbus=%q",
		node.GPIO.Chip, cfg.Interval(), node.MQTT.Broker, modbusTarget)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalName := "UNKNOWN"
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigCh
		log.Printf("received %v, shutting down", s)
		if s == syscall.SIGINT {
			signalName = "SIGINT"
		} else if s == syscall.SIGTERM {
			signalName = "SIGTERM"
		}
		cancel()
	}()

	sched := scheduler.New(eng, irq, sleeper, pubs, voltage, inputs, counters, tracker)
	runErr := sched.Run(ctx)

	tracker.SetMQTTConnected(mqttPub.IsConnected())
	snap = tracker.Snapshot()
	shutdownEvent := publish.SystemEvent{
		Timestamp:  time.Now(),
		Event:      "SHUTDOWN",
		Reason:     signalName,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName),
	}
	if err := pubs.PublishSystem(shutdownEvent); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}

	return runErr
}

// formatSnapshot renders one sampling pass for -print-state, most
// significant line first in each group.
func formatSnapshot(snap gpio.Snapshot) string {
	var counter, binary byte
	for i, l := range snap.Counter {
		if l == gpio.LevelHigh {
			counter |= 1 << i
		}
	}
	for i, l := range snap.Binary {
		if l == gpio.LevelHigh {
			binary |= 1 << i
		}
	}
	return fmt.Sprintf("counters=%s binary=%s", status.BitString(counter), status.BitString(binary))
}
