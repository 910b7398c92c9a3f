package publish

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/lamxuanhung/binary-sensor/internal/register"
)

// DefaultBaseTopic is the topic prefix for register and system messages.
const DefaultBaseTopic = "sensors/binary-sensor"

// MQTTPublisher publishes register payloads to an MQTT broker. Register
// payloads are sent raw (the byte layout is the contract) on
// <base>/register/<name>; system events are JSON on <base>/system.
type MQTTPublisher struct {
	client    paho.Client
	baseTopic string
}

// NewMQTTPublisher creates a publisher connected to the given broker.
func NewMQTTPublisher(broker, clientID, baseTopic string) (*MQTTPublisher, error) {
	if baseTopic == "" {
		baseTopic = DefaultBaseTopic
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTTPublisher{client: client, baseTopic: baseTopic}, nil
}

// Publish sends the register's current payload to the broker.
func (p *MQTTPublisher) Publish(reg register.Register) error {
	topic := p.baseTopic + "/register/" + reg.Name()

	// QoS 0 (at-most-once); the periodic heartbeat makes lost reports
	// self-healing. Retained so late subscribers see the last state.
	token := p.client.Publish(topic, 0, true, reg.Payload())
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish %s timeout", reg.Name())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", reg.Name(), err)
	}

	return nil
}

// PublishSystem sends a lifecycle event to the broker.
func (p *MQTTPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) for lifecycle events - we want delivery.
	token := p.client.Publish(p.baseTopic+"/system", 1, event.Retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}

	return nil
}

// IsConnected reports whether the MQTT connection is up.
func (p *MQTTPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
