package cmd

import (
	"fmt"

	"github.com/socforge/socforge/config"
	"github.com/spf13/cobra"
)

// addGenerateFlags adds the various flags for the generate command
func addGenerateFlags() error {
	// Get the default project config and throw an error if we cant
	defaultConfig, err := config.GetDefaultProjectConfig(DefaultSynthesisPlatform)
	if err != nil {
		return err
	}

	// Prevent alphabetical sorting of usage message
	generateCmd.Flags().SortFlags = false

	// Config file
	generateCmd.Flags().String("config", "", "path to config file")

	// CPU variant
	generateCmd.Flags().String("variant", "",
		fmt.Sprintf("CPU variant to integrate (unless a config file is provided, default is %q)", defaultConfig.CPU.Variant))

	// Reset address
	generateCmd.Flags().String("reset-address", "",
		fmt.Sprintf("address the core starts fetching from after reset (unless a config file is provided, default is %q)", defaultConfig.CPU.ResetAddress))

	// Source directory
	generateCmd.Flags().String("source-dir", "",
		fmt.Sprintf("directory path for the core's HDL sources (unless a config file is provided, default is %q)", defaultConfig.CPU.SourceDirectory))

	// Acquisition-only mode
	generateCmd.Flags().Bool("skip-synthesis", false,
		"only acquire the core's HDL sources, do not convert them")

	return nil
}

// updateProjectConfigWithGenerateFlags will update the given projectConfig with any CLI arguments that were provided
// to the generate command
func updateProjectConfigWithGenerateFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update CPU variant
	if cmd.Flags().Changed("variant") {
		projectConfig.CPU.Variant, err = cmd.Flags().GetString("variant")
		if err != nil {
			return err
		}
	}

	// Update reset address
	if cmd.Flags().Changed("reset-address") {
		projectConfig.CPU.ResetAddress, err = cmd.Flags().GetString("reset-address")
		if err != nil {
			return err
		}
	}

	// Update source directory
	if cmd.Flags().Changed("source-dir") {
		projectConfig.CPU.SourceDirectory, err = cmd.Flags().GetString("source-dir")
		if err != nil {
			return err
		}
	}

	// Drop the synthesis step entirely for acquisition-only runs
	if cmd.Flags().Changed("skip-synthesis") {
		skipSynthesis, err := cmd.Flags().GetBool("skip-synthesis")
		if err != nil {
			return err
		}
		if skipSynthesis {
			projectConfig.Synthesis = nil
		}
	}

	return nil
}
