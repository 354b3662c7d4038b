// Package config describes the project-level configuration consumed by the socforge CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/socforge/socforge/soc/cores/neorv32"
	"github.com/socforge/socforge/synthesis"
)

// ProjectConfig describes an integration project: the CPU core being integrated and the synthesis toolchain used to
// convert it.
type ProjectConfig struct {
	// CPU describes the processor core being integrated.
	CPU CPUConfig `json:"cpu"`

	// Synthesis describes the toolchain used to convert the core's HDL sources into a consumable artifact. When nil,
	// conversion is skipped entirely (acquisition-only mode).
	Synthesis *synthesis.Config `json:"synthesis,omitempty"`
}

// CPUConfig describes the processor core portion of a project configuration.
type CPUConfig struct {
	// Variant selects the CPU configuration variant.
	Variant string `json:"variant"`

	// ResetAddress is the address the core starts fetching instructions from after reset, as a decimal or
	// 0x-prefixed hexadecimal string.
	ResetAddress string `json:"resetAddress"`

	// SourceDirectory is the local working area the core's HDL sources are acquired into.
	SourceDirectory string `json:"sourceDirectory"`

	// AcquireSources controls whether missing HDL sources are downloaded from their canonical remote location.
	AcquireSources bool `json:"acquireSources"`

	// CacheArtifacts enables reuse of a previously converted artifact when the conversion inputs are unchanged.
	CacheArtifacts bool `json:"cacheArtifacts"`
}

// ParseResetAddress parses the configured reset vector.
func (c *CPUConfig) ParseResetAddress() (uint64, error) {
	resetAddress, err := strconv.ParseUint(c.ResetAddress, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse reset address '%s': %v", c.ResetAddress, err)
	}
	return resetAddress, nil
}

// GetDefaultProjectConfig obtains a default project configuration using the provided synthesis platform.
func GetDefaultProjectConfig(platform string) (*ProjectConfig, error) {
	// Obtain the default synthesis config for the requested platform, pointed at the core's top entity.
	synthesisConfig, err := synthesis.GetDefaultConfig(platform)
	if err != nil {
		return nil, err
	}
	platformConfig, err := synthesisConfig.GetPlatformConfig()
	if err != nil {
		return nil, err
	}
	platformConfig.SetTopEntity(neorv32.TopEntity)
	synthesisConfig, err = synthesis.NewConfigFromPlatformConfig(platformConfig)
	if err != nil {
		return nil, err
	}

	// Create our project configuration
	projectConfig := &ProjectConfig{
		CPU: CPUConfig{
			Variant:         "standard",
			ResetAddress:    "0x00000000",
			SourceDirectory: neorv32.DefaultSourceDirectory,
			AcquireSources:  true,
			CacheArtifacts:  false,
		},
		Synthesis: synthesisConfig,
	}
	return projectConfig, nil
}

// ReadProjectConfigFromFile reads and parses a project configuration from the given path, validating it before
// returning.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse the project configuration
	var projectConfig ProjectConfig
	if err = json.Unmarshal(b, &projectConfig); err != nil {
		return nil, err
	}

	// Validate the project configuration
	if err = projectConfig.Validate(); err != nil {
		return nil, err
	}
	return &projectConfig, nil
}

// WriteToFile serializes the configuration and saves it to the provided output path.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}

	// Save it to the provided output path and return the result
	return os.WriteFile(path, b, 0644)
}

// Validate checks the project configuration for errors a run would otherwise only hit mid-pipeline.
func (p *ProjectConfig) Validate() error {
	// The CPU variant must exist in the variant table.
	if _, err := neorv32.LookupVariant(p.CPU.Variant); err != nil {
		return err
	}

	// The reset address must parse if one was provided.
	if p.CPU.ResetAddress != "" {
		if _, err := p.CPU.ParseResetAddress(); err != nil {
			return err
		}
	}

	// The synthesis platform must be registered.
	if p.Synthesis != nil && !synthesis.IsSupportedSynthesisPlatform(p.Synthesis.Platform) {
		return fmt.Errorf("project configuration specifies an invalid synthesis platform '%s'", p.Synthesis.Platform)
	}
	return nil
}
