// Package cores defines the shared contract between CPU core descriptors and the composition framework that
// instantiates them.
package cores

import "github.com/socforge/socforge/soc"

// CPU describes the metadata every integrated processor core exposes to the surrounding system and to software
// toolchains targeting it.
type CPU interface {
	// Name returns the core's identifier (e.g. "neorv32").
	Name() string
	// Family returns the core's ISA family (e.g. "riscv").
	Family() string
	// DataWidth returns the width of the core's data path in bits.
	DataWidth() int
	// Endianness returns "little" or "big".
	Endianness() string
	// GCCFlags returns the compiler flags software targeting this core must be built with.
	GCCFlags() []string
}

// InstantiationRecord is the immutable output of a finalized CPU descriptor. The composition framework consumes it to
// instantiate the core's HDL entity and wire its bus endpoints into the larger system. Parameter keys and bus
// endpoint identities are a stable contract other parts of the system depend on.
type InstantiationRecord struct {
	// Entity is the HDL entity the record instantiates.
	Entity string `json:"entity"`

	// GCCFlags are the compiler flags software targeting this core instance must be built with.
	GCCFlags []string `json:"gccFlags"`

	// Params maps instantiation parameter names to their values.
	Params map[string]any `json:"params"`

	// IBus and DBus are the core's instruction and data bus endpoints, for the framework to wire into the system
	// interconnect.
	IBus *soc.Bus `json:"ibus"`
	DBus *soc.Bus `json:"dbus"`
}
