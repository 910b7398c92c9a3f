// Package register translates sampler and counter state into the
// fixed-layout byte payloads consumed by the publication layer. All
// serialization is pull-based: a register computes its payload when asked
// and never schedules itself.
package register

// ID identifies a register in the consuming table.
type ID byte

const (
	IDVoltage ID = iota
	IDBinaryInputs
	IDCounters
)

// Payload sizes are wire contracts with the consuming register layer.
const (
	VoltageSize      = 2
	BinaryInputsSize = 2
	CountersSize     = 16
)

// Register is the capability the scheduler and publishers depend on.
// Implementations serialize their current state into a fresh payload.
type Register interface {
	ID() ID
	Name() string
	Payload() []byte
}
