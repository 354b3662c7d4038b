package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/socforge/socforge/cmd/exitcodes"
	"github.com/socforge/socforge/config"
	"github.com/socforge/socforge/hdl"
	"github.com/socforge/socforge/logging/colors"
	"github.com/socforge/socforge/soc"
	"github.com/socforge/socforge/soc/cores/neorv32"
	"github.com/socforge/socforge/synthesis/platforms"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCmd represents the command provider for generate
var generateCmd = &cobra.Command{
	Use:               "generate",
	Short:             "Acquires and converts the CPU core, then emits its instantiation record",
	Long:              `Acquires and converts the CPU core, then emits its instantiation record`,
	Args:              cmdValidateGenerateArgs,
	ValidArgsFunction: cmdValidGenerateArgs,
	RunE:              cmdRunGenerate,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the generate command
	err := addGenerateFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the generate command", err)
	}

	// Add the generate command and its associated flags to the root command
	rootCmd.AddCommand(generateCmd)
}

// cmdValidGenerateArgs will return which flags and sub-commands are valid for dynamic completion for the generate command
func cmdValidGenerateArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// When adding a flag to a command, include the "--" prefix to indicate that it is a flag
			// and not a positional argument.
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})

	// Provide a list of flags that can be used in the current command (but have not been used yet)
	// for autocompletion suggestions
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateGenerateArgs makes sure that there are no positional arguments provided to the generate command
func cmdValidateGenerateArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("generate does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the generate command", err)
		return err
	}
	return nil
}

// cmdRunGenerate executes the CLI generate command and navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (socforge.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If socforge.json can't be found, use the default project configuration.
func cmdRunGenerate(cmd *cobra.Command, args []string) error {
	var projectConfig *config.ProjectConfig

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}

	// If --config was not used, look for `socforge.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the generate command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		// Try to read the configuration file and throw an error if something goes wrong
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the generate command", err)
			return err
		}
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed && existenceError != nil {
		cmdLogger.Error("Failed to run the generate command", existenceError)
		return existenceError
	}

	// Possibility #3: --config flag was not used and socforge.json was not found, so use the default config
	if !configFlagUsed && existenceError != nil {
		cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration for the "+
			"%v synthesis platform instead", configPath, DefaultSynthesisPlatform))

		projectConfig, err = config.GetDefaultProjectConfig(DefaultSynthesisPlatform)
		if err != nil {
			cmdLogger.Error("Failed to run the generate command", err)
			return err
		}
	}

	// Update the project configuration given whatever flags were set using the CLI
	if err = updateProjectConfigWithGenerateFlags(cmd, projectConfig); err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}

	// Validate the project config
	if err = projectConfig.Validate(); err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}

	// Parse the reset address up-front so a bad value fails before any network or toolchain work
	resetAddress, err := projectConfig.CPU.ParseResetAddress()
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}

	// Run the integration pipeline against an in-memory platform
	platform := soc.NewBasicPlatform()
	cpu, err := neorv32.New(platform, neorv32.Config{
		Variant:         projectConfig.CPU.Variant,
		SourceDirectory: projectConfig.CPU.SourceDirectory,
		AcquireSources:  projectConfig.CPU.AcquireSources,
		Synthesis:       projectConfig.Synthesis,
		CacheArtifacts:  projectConfig.CPU.CacheArtifacts,
	})
	if err != nil {
		cmdLogger.Error("Failed to integrate the CPU core", err)

		// Map the failure onto a pipeline-specific exit code so callers can tell acquisition and toolchain
		// failures apart.
		var acquisitionErr *hdl.AcquisitionError
		if errors.As(err, &acquisitionErr) {
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeAcquisitionError)
		}
		var synthesisErr *platforms.SynthesisError
		if errors.As(err, &synthesisErr) {
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeSynthesisError)
		}
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Configure the reset vector and emit the instantiation record
	if err = cpu.SetResetAddress(resetAddress); err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}
	record, err := cpu.Finalize()
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}

	cmdLogger.Info("Integrated ", colors.Bold, cpu.HumanName(), colors.Reset, " (variant: ", colors.Bold, cpu.Variant(), colors.Reset, ")")

	// Print the record for the surrounding composition flow to consume
	b, err := json.MarshalIndent(record, "", "\t")
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}
	fmt.Println(string(b))
	return nil
}
