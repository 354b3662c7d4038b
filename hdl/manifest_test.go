package hdl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestManifestRemoteURL ensures fetch URLs are joined correctly whether or not the base URL carries a trailing slash.
func TestManifestRemoteURL(t *testing.T) {
	manifest := &SourceManifest{BaseURL: "https://example.com/rtl/core", Files: []string{"a.src"}}
	assert.Equal(t, "https://example.com/rtl/core/a.src", manifest.RemoteURL("a.src"))

	manifest.BaseURL = "https://example.com/rtl/core/"
	assert.Equal(t, "https://example.com/rtl/core/a.src", manifest.RemoteURL("a.src"))
}

// TestManifestLocalPaths ensures local paths preserve manifest order.
func TestManifestLocalPaths(t *testing.T) {
	manifest := &SourceManifest{
		BaseURL: "https://example.com/rtl/core",
		Files:   []string{"pkg.vhd", "top.vhd", "alu.vhd"},
	}

	paths := manifest.LocalPaths("rtl")
	assert.Equal(t, []string{
		filepath.Join("rtl", "pkg.vhd"),
		filepath.Join("rtl", "top.vhd"),
		filepath.Join("rtl", "alu.vhd"),
	}, paths)
}
