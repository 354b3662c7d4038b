// Package soc defines the boundary between CPU integration descriptors and the surrounding hardware-composition
// framework: bus endpoint creation and registration of HDL sources for final output generation.
package soc

// Bus is a named bus endpoint exposed by a CPU core. The surrounding platform takes ownership of the endpoint for
// interconnect wiring; the core retains a reference for its own bookkeeping. A Bus is created once and never
// reassigned.
type Bus struct {
	// Name identifies the endpoint within its core (e.g. "ibus", "dbus"). Endpoint identities are a stable contract
	// that interconnect wiring code depends on.
	Name string `json:"name"`

	// DataWidth is the width of the bus data path in bits.
	DataWidth int `json:"dataWidth"`
}

// Platform describes the services a CPU core relies on during integration. Implementations are provided by the
// composition framework embedding the core.
type Platform interface {
	// NewBus creates a bus endpoint with the given name and data width. Ownership of the returned endpoint passes to
	// the platform for wiring.
	NewBus(name string, dataWidth int) *Bus

	// AddSource registers an HDL source file with the platform's own source set, making it an input to the
	// platform's final output generation.
	AddSource(path string)
}

// BasicPlatform is a minimal in-memory Platform implementation. It records created bus endpoints and registered
// sources and is suitable for command-line driven integration runs and tests.
type BasicPlatform struct {
	buses   []*Bus
	sources []string
}

// NewBasicPlatform returns an empty BasicPlatform.
func NewBasicPlatform() *BasicPlatform {
	return &BasicPlatform{}
}

// NewBus creates and records a bus endpoint.
func (p *BasicPlatform) NewBus(name string, dataWidth int) *Bus {
	bus := &Bus{Name: name, DataWidth: dataWidth}
	p.buses = append(p.buses, bus)
	return bus
}

// AddSource records an HDL source path in registration order.
func (p *BasicPlatform) AddSource(path string) {
	p.sources = append(p.sources, path)
}

// Buses returns the bus endpoints created through this platform, in creation order.
func (p *BasicPlatform) Buses() []*Bus {
	return p.buses
}

// Sources returns the HDL sources registered with this platform, in registration order.
func (p *BasicPlatform) Sources() []string {
	return p.sources
}
