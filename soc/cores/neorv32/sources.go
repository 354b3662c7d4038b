package neorv32

import "github.com/socforge/socforge/hdl"

const (
	// SourceBaseURL is the canonical remote location of the core's VHDL sources.
	SourceBaseURL = "https://raw.githubusercontent.com/stnolting/neorv32/main/rtl/core"

	// DefaultSourceDirectory is the local working area VHDL sources are acquired into when none is configured.
	DefaultSourceDirectory = "rtl"

	// TopEntity is the elaboration root used when converting the core to Verilog.
	TopEntity = "neorv32_cpu"
)

// SourceManifest returns the ordered manifest of VHDL sources required to elaborate the core. Order reflects
// elaboration/dependency order and is preserved by the conversion script.
func SourceManifest() *hdl.SourceManifest {
	return &hdl.SourceManifest{
		BaseURL: SourceBaseURL,
		Files: []string{
			"neorv32_package.vhd",          // Main CPU & processor package file.
			"neorv32_cpu.vhd",              // CPU top entity.
			"neorv32_cpu_alu.vhd",          // Arithmetic/logic unit.
			"neorv32_cpu_cp_bitmanip.vhd",  // Bit-manipulation co-processor.
			"neorv32_cpu_cp_cfu.vhd",       // Custom instructions co-processor.
			"neorv32_cpu_cp_fpu.vhd",       // Single-precision FPU co-processor.
			"neorv32_cpu_cp_muldiv.vhd",    // Integer multiplier/divider co-processor.
			"neorv32_cpu_cp_shifter.vhd",   // Base ISA shifter unit.
			"neorv32_cpu_bus.vhd",          // Instruction and data bus interface unit.
			"neorv32_cpu_control.vhd",      // CPU control and CSR system.
			"neorv32_cpu_decompressor.vhd", // Compressed instructions decoder.
			"neorv32_cpu_regfile.vhd",      // Data register file.
		},
	}
}
