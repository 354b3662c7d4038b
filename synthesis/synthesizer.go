// Package synthesis provides a platform-agnostic front-end for converting acquired HDL sources into an artifact the
// composition framework can consume, through one of several registered toolchain platforms.
package synthesis

import (
	"encoding/json"
	"fmt"

	"github.com/socforge/socforge/synthesis/platforms"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// defaultPlatformConfigGenerator is a mapping of platform identifier to generator functions which can be used to
// create a default configuration for the given platform. Each platform which provides a generator in this mapping
// will be considered a supported synthesis platform for a Config. Items are populated in the init method.
var defaultPlatformConfigGenerator map[string]func() platforms.PlatformConfig

// init is called once per inclusion of a package. This method is used on startup to populate
// defaultPlatformConfigGenerator and add supported platforms.
func init() {
	// Define a list of default platform config generators
	generators := []func() platforms.PlatformConfig{
		func() platforms.PlatformConfig { return platforms.NewGhdlYosysConfig("top") },
		func() platforms.PlatformConfig { return platforms.NewPrebuiltConfig("top.v") },
	}

	// Initialize our platform config generator.
	defaultPlatformConfigGenerator = make(map[string]func() platforms.PlatformConfig)

	// Generate each type of interface to create a mapping for their platform identifiers.
	for _, generator := range generators {
		// Generate a default config and obtain the platform id for it.
		platformConfig := generator()
		platformId := platformConfig.Platform()

		// If this platform already exists in our mapping, panic. Each platform should have a unique identifier.
		if _, platformIdExists := defaultPlatformConfigGenerator[platformId]; platformIdExists {
			panic(fmt.Errorf("the synthesis platform '%s' is registered with more than one provider", platformId))
		}

		// Add this entry to our mapping
		defaultPlatformConfigGenerator[platformId] = generator
	}
}

// GetSupportedSynthesisPlatforms obtains a list of strings which represent platform identifiers supported by methods
// in this package, in sorted order.
func GetSupportedSynthesisPlatforms() []string {
	platformIds := maps.Keys(defaultPlatformConfigGenerator)
	slices.Sort(platformIds)
	return platformIds
}

// IsSupportedSynthesisPlatform returns a boolean status indicating if a platform identifier is supported within this
// package.
func IsSupportedSynthesisPlatform(platform string) bool {
	// Verify the platform is in our supported map
	_, ok := defaultPlatformConfigGenerator[platform]
	return ok
}

// Config describes a generic, serializable synthesis configuration. The platform-specific portion is kept as a raw
// message so that many platform config types can be serialized/deserialized to their appropriate types and supported
// generally.
type Config struct {
	// Platform references an identifier indicating which synthesis platform to use.
	// PlatformConfig is a structure dependent on the defined Platform.
	Platform string `json:"platform"`

	// PlatformConfig describes the platform-specific configuration needed to convert.
	PlatformConfig *json.RawMessage `json:"platformConfig"`
}

// NewConfigFromPlatformConfig takes a platforms.PlatformConfig and wraps it in a generic Config. This allows many
// platform config types to be serialized/deserialized to their appropriate types and supported generally.
func NewConfigFromPlatformConfig(platformConfig platforms.PlatformConfig) (*Config, error) {
	// Marshal our config to a raw message
	b, err := json.Marshal(platformConfig)
	if err != nil {
		return nil, err
	}
	platformConfigMsg := (*json.RawMessage)(&b)

	// Return the config containing our platform-specific config
	return &Config{Platform: platformConfig.Platform(), PlatformConfig: platformConfigMsg}, nil
}

// GetDefaultConfig returns a Config with default values for a given platform identifier. If an error occurs, it is
// returned instead.
func GetDefaultConfig(platform string) (*Config, error) {
	// Verify the platform is valid
	if !IsSupportedSynthesisPlatform(platform) {
		return nil, fmt.Errorf("could not get default synthesis config: platform '%s' is unsupported", platform)
	}

	// Obtain the default platform config and wrap it
	platformConfig := defaultPlatformConfigGenerator[platform]()
	return NewConfigFromPlatformConfig(platformConfig)
}

// GetPlatformConfig deserializes the inner platform-specific configuration into its concrete type.
func (c *Config) GetPlatformConfig() (platforms.PlatformConfig, error) {
	// Verify the platform is valid
	if !IsSupportedSynthesisPlatform(c.Platform) {
		return nil, fmt.Errorf("could not convert from config: platform '%s' is unsupported", c.Platform)
	}
	if c.PlatformConfig == nil {
		return nil, fmt.Errorf("could not convert from config: platform '%s' has no platform config", c.Platform)
	}

	// Allocate a platform config given our platform string in our config.
	// It is necessary to do so as json.Unmarshal needs a concrete structure to populate
	platformConfig := defaultPlatformConfigGenerator[c.Platform]()
	err := json.Unmarshal(*c.PlatformConfig, &platformConfig)
	if err != nil {
		return nil, err
	}
	return platformConfig, nil
}

// Convert takes a generic Config and deserializes the inner platforms.PlatformConfig, which is then used to convert
// the provided HDL sources, listed in elaboration order. Returns the artifact path produced by the platform provider
// or an error. Toolchain output may also be returned in either case.
func Convert(config *Config, sources []string) (string, string, error) {
	platformConfig, err := config.GetPlatformConfig()
	if err != nil {
		return "", "", err
	}

	// Convert using our platform config
	return platformConfig.Convert(sources)
}
