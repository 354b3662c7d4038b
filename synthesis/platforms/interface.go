// Package platforms provides the individual synthesis toolchain integrations used to convert HDL sources into an
// artifact the composition framework can consume.
package platforms

// PlatformConfig describes the interface all synthesis platform configs must implement.
type PlatformConfig interface {
	// Convert drives the platform's toolchain over the provided HDL sources, listed in elaboration order, and returns
	// the path of the produced artifact along with any captured toolchain output.
	Convert(sources []string) (string, string, error)
	Platform() string
	GetTopEntity() string
	SetTopEntity(string)
}
