// Package neorv32 integrates the NEORV32 RISC-V processor core into the composition framework. It describes the core
// as a typed descriptor with configuration variants, ensures the core's VHDL sources exist locally, optionally
// converts them to Verilog through an external synthesis toolchain, and emits the record needed to instantiate the
// core in a larger system.
package neorv32

import (
	"errors"

	"github.com/socforge/socforge/hdl"
	"github.com/socforge/socforge/logging"
	"github.com/socforge/socforge/logging/colors"
	"github.com/socforge/socforge/soc"
	"github.com/socforge/socforge/soc/cores"
	"github.com/socforge/socforge/synthesis"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Static core metadata. The NEORV32 is a little-endian 32-bit RISC-V core.
const (
	cpuName            = "neorv32"
	cpuHumanName       = "NEORV32"
	cpuFamily          = "riscv"
	cpuDataWidth       = 32
	cpuEndianness      = "little"
	linkerOutputFormat = "elf32-littleriscv"
	nopInstruction     = "nop"
)

// ResetPCParam is the instantiation parameter key carrying the reset vector.
const ResetPCParam = "RESET_PC"

// gccTriples lists GCC toolchain triples known to target this core, in preference order.
var gccTriples = []string{
	"riscv64-unknown-elf",
	"riscv32-unknown-elf",
	"riscv-none-embed",
	"riscv64-linux",
	"riscv-sifive-elf",
	"riscv64-none-elf",
	"riscv-none-elf",
}

// ioRegions maps IO region origins to their lengths.
var ioRegions = map[uint64]uint64{
	0x80000000: 0x80000000,
}

// Config parameterizes construction of a CPU descriptor.
type Config struct {
	// Variant selects the CPU configuration variant. It must name an entry in the variant table.
	Variant string

	// SourceDirectory is the local working area HDL sources are acquired into and converted from. If empty,
	// DefaultSourceDirectory is used.
	SourceDirectory string

	// AcquireSources controls whether construction ensures the core's VHDL sources exist locally, fetching missing
	// ones from their canonical remote location. Disable it for bring-your-own-artifact configurations.
	AcquireSources bool

	// Fetcher optionally overrides the transport used to download missing sources. If nil, a plain HTTP fetcher is
	// used.
	Fetcher hdl.Fetcher

	// Synthesis optionally configures conversion of the sources into a platform-consumable artifact. When nil,
	// construction stops after acquisition (acquisition-only mode).
	Synthesis *synthesis.Config

	// CacheArtifacts enables skipping reconversion when the conversion inputs are unchanged since the previous run.
	CacheArtifacts bool
}

// CPU is the integration descriptor for a NEORV32 core instance. It is created by New, configured with a reset
// address, and consumed by Finalize, which emits the core's instantiation record. A finalized CPU permits no further
// mutation.
type CPU struct {
	variant  string
	gccFlags []string

	params map[string]any
	ibus   *soc.Bus
	dbus   *soc.Bus

	resetAddressSet bool
	finalized       bool

	logger *logging.Logger
}

// Compile-time check that the descriptor satisfies the shared core contract.
var _ cores.CPU = (*CPU)(nil)

// New constructs a NEORV32 CPU descriptor attached to the given platform. Construction looks up the requested
// variant, creates the core's bus endpoints through the platform, and runs the configured acquisition and conversion
// steps. Any step failing aborts construction; there is no partially constructed descriptor visible to callers.
func New(platform soc.Platform, config Config) (*CPU, error) {
	// Look up the variant first. An unknown variant is a configuration error, not a silent default.
	flags, err := LookupVariant(config.Variant)
	if err != nil {
		return nil, err
	}

	sourceDirectory := config.SourceDirectory
	if sourceDirectory == "" {
		sourceDirectory = DefaultSourceDirectory
	}

	cpu := &CPU{
		variant:  config.Variant,
		gccFlags: flags,
		params:   make(map[string]any),
		ibus:     platform.NewBus("ibus", cpuDataWidth),
		dbus:     platform.NewBus("dbus", cpuDataWidth),
		logger:   logging.GlobalLogger.NewSubLogger("module", "neorv32"),
	}

	manifest := SourceManifest()

	// Ensure the core's VHDL sources exist locally. Already-present files are never re-fetched.
	if config.AcquireSources {
		if err := hdl.NewAcquirer(config.Fetcher).Ensure(manifest, sourceDirectory); err != nil {
			return nil, err
		}
	}

	// Convert the sources into a form the platform can consume and hand the artifact over explicitly.
	if config.Synthesis != nil {
		sources := manifest.LocalPaths(sourceDirectory)

		var artifact string
		if config.CacheArtifacts {
			artifact, _, err = synthesis.ConvertWithCache(config.Synthesis, sources, sourceDirectory)
		} else {
			artifact, _, err = synthesis.Convert(config.Synthesis, sources)
		}
		if err != nil {
			return nil, err
		}

		cpu.logger.Info("Converted ", colors.Bold, cpuHumanName, colors.Reset, " core to ", colors.Bold, artifact, colors.Reset)
		platform.AddSource(artifact)
	}

	return cpu, nil
}

// Name returns the core's identifier.
func (c *CPU) Name() string {
	return cpuName
}

// HumanName returns the core's human-readable name.
func (c *CPU) HumanName() string {
	return cpuHumanName
}

// Family returns the core's ISA family.
func (c *CPU) Family() string {
	return cpuFamily
}

// DataWidth returns the width of the core's data path in bits.
func (c *CPU) DataWidth() int {
	return cpuDataWidth
}

// Endianness returns the core's byte order.
func (c *CPU) Endianness() string {
	return cpuEndianness
}

// LinkerOutputFormat returns the BFD output format linkers must produce for this core.
func (c *CPU) LinkerOutputFormat() string {
	return linkerOutputFormat
}

// Nop returns the core's no-operation instruction mnemonic.
func (c *CPU) Nop() string {
	return nopInstruction
}

// GCCTriples returns the GCC toolchain triples known to target this core, in preference order.
func (c *CPU) GCCTriples() []string {
	return slices.Clone(gccTriples)
}

// IORegions returns the core's IO regions as a mapping from origin to length.
func (c *CPU) IORegions() map[uint64]uint64 {
	return maps.Clone(ioRegions)
}

// Variant returns the variant id the descriptor was constructed with.
func (c *CPU) Variant() string {
	return c.variant
}

// GCCFlags returns the compiler flags for the selected variant, including the core's identification define.
func (c *CPU) GCCFlags() []string {
	flags := slices.Clone(c.gccFlags)
	return append(flags, "-D__neorv32__")
}

// IBus returns the core's instruction bus endpoint.
func (c *CPU) IBus() *soc.Bus {
	return c.ibus
}

// DBus returns the core's data bus endpoint.
func (c *CPU) DBus() *soc.Bus {
	return c.dbus
}

// MissingResetAddressError indicates Finalize was called before a reset address was set. It is a usage error: the
// reset address is required configuration and has no default.
type MissingResetAddressError struct{}

func (e *MissingResetAddressError) Error() string {
	return "cannot finalize neorv32 CPU: no reset address was set (call SetResetAddress before Finalize)"
}

// SetResetAddress records the address the core starts fetching instructions from after reset. Calling it again before
// Finalize overwrites the previous value; the last value set wins. Calling it after Finalize is an error, as the
// emitted instantiation record is immutable.
func (c *CPU) SetResetAddress(resetAddress uint64) error {
	if c.finalized {
		return errors.New("cannot set the reset address of a finalized neorv32 CPU")
	}
	c.params[ResetPCParam] = resetAddress
	c.resetAddressSet = true
	return nil
}

// Finalize validates the descriptor and emits its instantiation record for the composition framework to consume.
// It fails with MissingResetAddressError if no reset address was set. Finalize is a read of the descriptor's resolved
// state, not a transition: it may be called again and returns an equivalent record, but the descriptor permits no
// further mutation once it has been finalized.
func (c *CPU) Finalize() (*cores.InstantiationRecord, error) {
	if !c.resetAddressSet {
		return nil, &MissingResetAddressError{}
	}
	c.finalized = true

	return &cores.InstantiationRecord{
		Entity:   TopEntity,
		GCCFlags: c.GCCFlags(),
		Params:   maps.Clone(c.params),
		IBus:     c.ibus,
		DBus:     c.dbus,
	}, nil
}
