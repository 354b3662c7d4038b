// Package hdl handles acquisition of hardware-description sources: it describes which files a core needs and ensures
// they exist in a local working area, fetching missing ones from their canonical remote location.
package hdl

import (
	"path/filepath"
	"strings"
)

// SourceManifest is an ordered list of HDL source file names together with the remote location they can be fetched
// from. Manifest order reflects elaboration/dependency order; acquisition fetches each file independently, but
// conversion scripts must reference the files in manifest order.
type SourceManifest struct {
	// BaseURL is the remote location the sources originate from. A file's fetch URL is BaseURL joined with its name.
	BaseURL string

	// Files lists the source file names, unique within the manifest, in elaboration order.
	Files []string
}

// RemoteURL returns the fetch URL for the named source file.
func (m *SourceManifest) RemoteURL(name string) string {
	return strings.TrimSuffix(m.BaseURL, "/") + "/" + name
}

// LocalPaths returns the local path of every manifest file under the given directory, in manifest order.
func (m *SourceManifest) LocalPaths(dir string) []string {
	paths := make([]string, len(m.Files))
	for i, name := range m.Files {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}
