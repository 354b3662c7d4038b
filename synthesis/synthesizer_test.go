package synthesis

import (
	"testing"

	"github.com/socforge/socforge/synthesis/platforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetSupportedSynthesisPlatforms ensures every registered platform is listed, in sorted order.
func TestGetSupportedSynthesisPlatforms(t *testing.T) {
	supported := GetSupportedSynthesisPlatforms()
	assert.Equal(t, []string{"ghdl-yosys", "prebuilt"}, supported)

	for _, platform := range supported {
		assert.True(t, IsSupportedSynthesisPlatform(platform))
	}
	assert.False(t, IsSupportedSynthesisPlatform("vivado"))
}

// TestGetDefaultConfig ensures default configs can be produced for every supported platform and carry the platform
// identifier they were requested for.
func TestGetDefaultConfig(t *testing.T) {
	for _, platform := range GetSupportedSynthesisPlatforms() {
		config, err := GetDefaultConfig(platform)
		require.NoError(t, err)
		assert.Equal(t, platform, config.Platform)
		assert.NotNil(t, config.PlatformConfig)
	}

	// An unsupported platform identifier must be rejected
	_, err := GetDefaultConfig("vivado")
	assert.Error(t, err)
}

// TestConfigRoundTrip ensures a platform config wrapped into a generic Config deserializes back to an equivalent
// concrete config.
func TestConfigRoundTrip(t *testing.T) {
	original := platforms.NewGhdlYosysConfig("neorv32_cpu")
	original.Standard = "93"
	original.YosysPath = "/opt/yosys/bin/yosys"

	config, err := NewConfigFromPlatformConfig(original)
	require.NoError(t, err)
	assert.Equal(t, "ghdl-yosys", config.Platform)

	platformConfig, err := config.GetPlatformConfig()
	require.NoError(t, err)
	restored, ok := platformConfig.(*platforms.GhdlYosysConfig)
	require.True(t, ok)
	assert.Equal(t, original, restored)
}

// TestGetPlatformConfigErrors ensures config deserialization rejects unsupported platforms and missing inner configs.
func TestGetPlatformConfigErrors(t *testing.T) {
	config := &Config{Platform: "vivado"}
	_, err := config.GetPlatformConfig()
	assert.Error(t, err)

	config = &Config{Platform: "ghdl-yosys"}
	_, err = config.GetPlatformConfig()
	assert.Error(t, err)
}

// TestConvertUnsupportedPlatform ensures the generic conversion entry point propagates config deserialization
// failures.
func TestConvertUnsupportedPlatform(t *testing.T) {
	config := &Config{Platform: "vivado"}
	_, _, err := Convert(config, []string{"a.vhd"})
	assert.Error(t, err)
}
