package synthesis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/socforge/socforge/synthesis/platforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCacheTestSources writes placeholder HDL sources into dir and returns their paths in order.
func writeCacheTestSources(t *testing.T, dir string, names ...string) []string {
	sources := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("-- "+name), 0644))
		sources = append(sources, path)
	}
	return sources
}

// writeLoggingStubYosys writes an executable shell script standing in for yosys which appends a line to runLogPath on
// every conversion run, so tests can count toolchain invocations.
func writeLoggingStubYosys(t *testing.T, dir string, runLogPath string) string {
	stubPath := filepath.Join(dir, "yosys-stub")
	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "-V" ]; then
	echo "Yosys 0.33.0 (git sha1 0000000)"
	exit 0
fi
echo run >> %s
exit 0
`, runLogPath)
	require.NoError(t, os.WriteFile(stubPath, []byte(script), 0755))
	return stubPath
}

// countRuns returns how many conversion runs the logging stub has recorded.
func countRuns(t *testing.T, runLogPath string) int {
	data, err := os.ReadFile(runLogPath)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(data), "run")
}

// TestComputeSourceHash ensures the input hash is deterministic and sensitive to source contents, source order and
// the top entity name.
func TestComputeSourceHash(t *testing.T) {
	testDir := t.TempDir()
	sources := writeCacheTestSources(t, testDir, "a.vhd", "b.vhd")

	hash1, err := ComputeSourceHash("top", sources)
	require.NoError(t, err)
	hash2, err := ComputeSourceHash("top", sources)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)

	// A different top entity changes the hash
	hashOther, err := ComputeSourceHash("other", sources)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hashOther)

	// Source order changes the hash
	hashReordered, err := ComputeSourceHash("top", []string{sources[1], sources[0]})
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hashReordered)

	// Edited contents change the hash
	require.NoError(t, os.WriteFile(sources[0], []byte("-- edited"), 0644))
	hashEdited, err := ComputeSourceHash("top", sources)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hashEdited)

	// An unreadable source is an error
	_, err = ComputeSourceHash("top", []string{filepath.Join(testDir, "missing.vhd")})
	assert.Error(t, err)
}

// TestArtifactCacheRoundTrip ensures the cache file survives a save/load cycle and that a missing or corrupt cache
// loads as nil.
func TestArtifactCacheRoundTrip(t *testing.T) {
	cacheDir := t.TempDir()

	assert.Nil(t, LoadArtifactCache(cacheDir))

	cache := &ArtifactCache{Hash: "abc123", Artifact: "top.v", Timestamp: time.Now().UTC()}
	require.NoError(t, SaveArtifactCache(cacheDir, cache))

	loaded := LoadArtifactCache(cacheDir)
	require.NotNil(t, loaded)
	assert.Equal(t, cache.Hash, loaded.Hash)
	assert.Equal(t, cache.Artifact, loaded.Artifact)

	// A corrupt cache file loads as nil rather than erroring
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, ArtifactCacheFileName), []byte("not json"), 0644))
	assert.Nil(t, LoadArtifactCache(cacheDir))
}

// TestConvertWithCacheSkipsUnchangedInputs ensures a second conversion over unchanged inputs skips the toolchain
// entirely and that editing a source forces a rerun.
func TestConvertWithCacheSkipsUnchangedInputs(t *testing.T) {
	testDir := t.TempDir()
	sources := writeCacheTestSources(t, testDir, "a.vhd", "b.vhd")
	runLogPath := filepath.Join(testDir, "runs.log")

	platformConfig := platforms.NewGhdlYosysConfig("top")
	platformConfig.OutputPath = filepath.Join(testDir, "top.v")
	platformConfig.ScriptPath = filepath.Join(testDir, "top.ys")
	platformConfig.YosysPath = writeLoggingStubYosys(t, testDir, runLogPath)
	config, err := NewConfigFromPlatformConfig(platformConfig)
	require.NoError(t, err)

	// The stub never writes the artifact itself, so create it where the config expects it
	require.NoError(t, os.WriteFile(platformConfig.OutputPath, []byte("module top(); endmodule"), 0644))

	// First conversion runs the toolchain and refreshes the cache
	artifact, _, err := ConvertWithCache(config, sources, testDir)
	require.NoError(t, err)
	assert.Equal(t, platformConfig.OutputPath, artifact)
	assert.Equal(t, 1, countRuns(t, runLogPath))
	assert.FileExists(t, filepath.Join(testDir, ArtifactCacheFileName))

	// Unchanged inputs skip the toolchain
	artifact, _, err = ConvertWithCache(config, sources, testDir)
	require.NoError(t, err)
	assert.Equal(t, platformConfig.OutputPath, artifact)
	assert.Equal(t, 1, countRuns(t, runLogPath))

	// Editing a source invalidates the cache and reruns the toolchain
	require.NoError(t, os.WriteFile(sources[0], []byte("-- edited"), 0644))
	_, _, err = ConvertWithCache(config, sources, testDir)
	require.NoError(t, err)
	assert.Equal(t, 2, countRuns(t, runLogPath))
}

// TestConvertWithCacheRerunsWhenArtifactMissing ensures a matching hash alone is not enough: the cached artifact must
// still exist on disk for the toolchain to be skipped.
func TestConvertWithCacheRerunsWhenArtifactMissing(t *testing.T) {
	testDir := t.TempDir()
	sources := writeCacheTestSources(t, testDir, "a.vhd")
	runLogPath := filepath.Join(testDir, "runs.log")

	platformConfig := platforms.NewGhdlYosysConfig("top")
	platformConfig.OutputPath = filepath.Join(testDir, "top.v")
	platformConfig.ScriptPath = filepath.Join(testDir, "top.ys")
	platformConfig.YosysPath = writeLoggingStubYosys(t, testDir, runLogPath)
	config, err := NewConfigFromPlatformConfig(platformConfig)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(platformConfig.OutputPath, []byte("module top(); endmodule"), 0644))

	_, _, err = ConvertWithCache(config, sources, testDir)
	require.NoError(t, err)
	require.Equal(t, 1, countRuns(t, runLogPath))

	// Delete the artifact but keep the cache entry; the next run must reconvert
	require.NoError(t, os.Remove(platformConfig.OutputPath))

	_, _, err = ConvertWithCache(config, sources, testDir)
	require.NoError(t, err)
	assert.Equal(t, 2, countRuns(t, runLogPath))
}
