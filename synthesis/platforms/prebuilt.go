package platforms

import (
	"fmt"

	"github.com/socforge/socforge/utils"
)

// PrebuiltConfig satisfies the synthesis step with an artifact that was converted ahead of time, skipping any
// toolchain invocation. It exists for bring-your-own-artifact configurations where the converted form is checked in
// or produced by an external build.
type PrebuiltConfig struct {
	// ArtifactPath is the path of the pre-converted artifact.
	ArtifactPath string `json:"artifactPath"`

	// TopEntity names the entity the artifact implements. It is informational for this platform; the artifact is
	// consumed as-is.
	TopEntity string `json:"topEntity,omitempty"`
}

// NewPrebuiltConfig returns a PrebuiltConfig referencing the given artifact path.
func NewPrebuiltConfig(artifactPath string) *PrebuiltConfig {
	return &PrebuiltConfig{
		ArtifactPath: artifactPath,
	}
}

func (p *PrebuiltConfig) Platform() string {
	return "prebuilt"
}

// GetTopEntity returns the entity name the artifact implements, if declared.
func (p *PrebuiltConfig) GetTopEntity() string {
	return p.TopEntity
}

// SetTopEntity sets the entity name the artifact implements.
func (p *PrebuiltConfig) SetTopEntity(newTopEntity string) {
	p.TopEntity = newTopEntity
}

// Convert validates that the pre-converted artifact exists and returns its path. The sources argument is ignored;
// this platform never reads HDL sources.
func (p *PrebuiltConfig) Convert(sources []string) (string, string, error) {
	if !utils.FileExists(p.ArtifactPath) {
		return "", "", fmt.Errorf("prebuilt artifact '%s' does not exist locally", p.ArtifactPath)
	}
	return p.ArtifactPath, "", nil
}
