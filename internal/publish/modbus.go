package publish

import (
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/lamxuanhung/binary-sensor/internal/register"
)

// ModbusPublisher mirrors register payloads into holding registers of a
// Modbus/TCP target, so PLC-side consumers can poll the same table the
// radio side receives. Payload bytes map straight onto register words: all
// payloads are big-endian and even-sized.
type ModbusPublisher struct {
	client  modbus.Client
	handler *modbus.TCPClientHandler
	offsets map[register.ID]uint16
}

// NewModbusPublisher connects to the target and maps each register ID to a
// holding-register offset.
func NewModbusPublisher(endpoint string, unitID byte, timeout time.Duration, offsets map[register.ID]uint16) (*ModbusPublisher, error) {
	handler := modbus.NewTCPClientHandler(endpoint)
	handler.SlaveId = unitID
	handler.Timeout = timeout

	if err := handler.Connect(); err != nil {
		return nil, fmt.Errorf("connect modbus target %s: %w", endpoint, err)
	}

	return &ModbusPublisher{
		client:  modbus.NewClient(handler),
		handler: handler,
		offsets: offsets,
	}, nil
}

// Publish writes the register's payload into its holding-register window.
func (p *ModbusPublisher) Publish(reg register.Register) error {
	offset, ok := p.offsets[reg.ID()]
	if !ok {
		return fmt.Errorf("no modbus offset for register %s", reg.Name())
	}

	payload := reg.Payload()
	if len(payload)%2 != 0 {
		return fmt.Errorf("register %s: odd payload size %d", reg.Name(), len(payload))
	}

	quantity := uint16(len(payload) / 2)
	if _, err := p.client.WriteMultipleRegisters(offset, quantity, payload); err != nil {
		return fmt.Errorf("write %s at offset %d: %w", reg.Name(), offset, err)
	}
	return nil
}

// PublishSystem is a no-op: lifecycle events have no representation in the
// polled register table.
func (p *ModbusPublisher) PublishSystem(SystemEvent) error {
	return nil
}

// Close disconnects from the target.
func (p *ModbusPublisher) Close() error {
	return p.handler.Close()
}
