package platforms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubYosys writes an executable shell script standing in for the yosys binary. It reports the given version
// when probed with -V and exits with the given status (after printing runOutput) for any other invocation.
func writeStubYosys(t *testing.T, dir string, version string, exitCode int, runOutput string) string {
	stubPath := filepath.Join(dir, "yosys-stub")
	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "-V" ]; then
	echo "Yosys %s (git sha1 0000000)"
	exit 0
fi
echo "%s"
exit %d
`, version, runOutput, exitCode)
	require.NoError(t, os.WriteFile(stubPath, []byte(script), 0755))
	return stubPath
}

// writeTestSources writes placeholder HDL sources into dir and returns their paths in order.
func writeTestSources(t *testing.T, dir string, names ...string) []string {
	sources := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("-- "+name), 0644))
		sources = append(sources, path)
	}
	return sources
}

// TestRenderScript verifies the rendered synthesis script against its expected form: one GHDL elaboration command
// spanning all sources in order, assert stripping, then the Verilog write.
func TestRenderScript(t *testing.T) {
	config := NewGhdlYosysConfig("neorv32_cpu")
	script := config.RenderScript([]string{"rtl/a.vhd", "rtl/b.vhd"})

	expected := strings.Join([]string{
		`ghdl --ieee=synopsys -fexplicit -frelaxed-rules --std=08 \`,
		`rtl/a.vhd \`,
		`rtl/b.vhd \`,
		`-e neorv32_cpu`,
		`chformal -assert -remove`,
		`write_verilog neorv32_cpu.v`,
	}, "\n")
	assert.Equal(t, expected, script)
}

// TestConvertRequiresSources ensures conversion rejects an empty source list before touching the toolchain.
func TestConvertRequiresSources(t *testing.T) {
	config := NewGhdlYosysConfig("top")
	_, _, err := config.Convert(nil)
	assert.Error(t, err)
}

// TestConvertRequiresSourcesToExist ensures conversion fails, naming the offending path, when any source is missing
// locally.
func TestConvertRequiresSourcesToExist(t *testing.T) {
	testDir := t.TempDir()
	sources := writeTestSources(t, testDir, "a.vhd")
	missing := filepath.Join(testDir, "b.vhd")

	config := NewGhdlYosysConfig("top")
	_, _, err := config.Convert(append(sources, missing))
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}

// TestConvertSuccess runs the full conversion flow against a stub toolchain and verifies the artifact path, the
// persisted script and the captured output.
func TestConvertSuccess(t *testing.T) {
	testDir := t.TempDir()
	sources := writeTestSources(t, testDir, "a.vhd", "b.vhd")

	config := NewGhdlYosysConfig("top")
	config.OutputPath = filepath.Join(testDir, "top.v")
	config.ScriptPath = filepath.Join(testDir, "top.ys")
	config.YosysPath = writeStubYosys(t, testDir, "0.33.0", 0, "converted ok")

	artifact, toolOutput, err := config.Convert(sources)
	require.NoError(t, err)
	assert.Equal(t, config.OutputPath, artifact)
	assert.Contains(t, toolOutput, "converted ok")

	// The rendered script was persisted for inspection and reruns
	script, err := os.ReadFile(config.ScriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(script), "-e top")
	assert.Contains(t, string(script), sources[0])
}

// TestConvertToolchainFailure ensures a non-zero toolchain exit is fatal and reported as a SynthesisError carrying
// the process output.
func TestConvertToolchainFailure(t *testing.T) {
	testDir := t.TempDir()
	sources := writeTestSources(t, testDir, "a.vhd")

	config := NewGhdlYosysConfig("top")
	config.OutputPath = filepath.Join(testDir, "top.v")
	config.ScriptPath = filepath.Join(testDir, "top.ys")
	config.YosysPath = writeStubYosys(t, testDir, "0.33.0", 1, "ERROR: module ghdl not found")

	_, _, err := config.Convert(sources)
	require.Error(t, err)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Contains(t, synthErr.Reason, "top")
	assert.Contains(t, synthErr.Hint, "GHDL-Yosys-plugin")
	assert.Contains(t, synthErr.Output, "ERROR: module ghdl not found")
	assert.Contains(t, synthErr.Error(), "Command Output:")
}

// TestConvertRejectsOldToolchain ensures versions below the supported minimum are refused before any conversion work.
func TestConvertRejectsOldToolchain(t *testing.T) {
	testDir := t.TempDir()
	sources := writeTestSources(t, testDir, "a.vhd")

	config := NewGhdlYosysConfig("top")
	config.ScriptPath = filepath.Join(testDir, "top.ys")
	config.YosysPath = writeStubYosys(t, testDir, "0.9", 0, "")

	_, _, err := config.Convert(sources)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported yosys version")

	// Refusal happens before the script is rendered
	assert.NoFileExists(t, config.ScriptPath)
}

// TestGetYosysVersion ensures version probing parses two and three component versions and fails cleanly on
// unparseable output.
func TestGetYosysVersion(t *testing.T) {
	testDir := t.TempDir()

	version, err := GetYosysVersion(writeStubYosys(t, testDir, "0.33.0", 0, ""))
	require.NoError(t, err)
	assert.Equal(t, "0.33.0", version.String())

	// A stub printing no digits must produce a parse error, not a zero version
	badStub := filepath.Join(testDir, "yosys-bad")
	require.NoError(t, os.WriteFile(badStub, []byte("#!/bin/sh\necho \"Yosys unknown\"\nexit 0\n"), 0755))
	_, err = GetYosysVersion(badStub)
	assert.Error(t, err)
}
