package cmd

import (
	"github.com/rs/zerolog"
	"github.com/socforge/socforge/logging"
	"github.com/spf13/cobra"
)

// rootCmd represents the root CLI command object. All commands are attached to this root command.
var rootCmd = &cobra.Command{
	Use:   "socforge",
	Short: "A CPU core integration tool for hardware-composition flows",
	Long: "socforge acquires a CPU core's HDL sources, converts them with an external synthesis toolchain, and emits " +
		"the record needed to instantiate the core in a larger system",
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, true)

// Execute provides an exportable function to invoke the CLI. Returns an error if one was encountered.
func Execute() error {
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}
