package platforms

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/socforge/socforge/utils"
)

// minimumYosysVersion is the oldest Yosys release known to work with the GHDL plugin flow used by this platform.
var minimumYosysVersion = semver.MustParse("0.10.0")

// GhdlYosysConfig drives the GHDL/Yosys flow: GHDL elaborates the VHDL sources inside Yosys (via the ghdl plugin) and
// Yosys writes the design back out as Verilog.
type GhdlYosysConfig struct {
	// TopEntity is the name of the entity used as the elaboration root.
	TopEntity string `json:"topEntity"`

	// OutputPath is the path the converted Verilog artifact is written to.
	OutputPath string `json:"outputPath"`

	// ScriptPath is the path the generated synthesis script is written to. An existing script is overwritten.
	ScriptPath string `json:"scriptPath"`

	// Standard is the VHDL language standard passed to GHDL (e.g. "08").
	Standard string `json:"standard"`

	// YosysPath optionally overrides the yosys executable to invoke. If empty, "yosys" is resolved from PATH.
	YosysPath string `json:"yosysPath,omitempty"`
}

// NewGhdlYosysConfig returns a GhdlYosysConfig with defaults derived from the provided top entity name.
func NewGhdlYosysConfig(topEntity string) *GhdlYosysConfig {
	return &GhdlYosysConfig{
		TopEntity:  topEntity,
		OutputPath: topEntity + ".v",
		ScriptPath: topEntity + ".ys",
		Standard:   "08",
	}
}

func (g *GhdlYosysConfig) Platform() string {
	return "ghdl-yosys"
}

// GetTopEntity returns the entity used as the elaboration root.
func (g *GhdlYosysConfig) GetTopEntity() string {
	return g.TopEntity
}

// SetTopEntity sets the new elaboration root for conversion.
func (g *GhdlYosysConfig) SetTopEntity(newTopEntity string) {
	g.TopEntity = newTopEntity
}

// yosysBinary returns the executable to invoke for both version probing and conversion.
func (g *GhdlYosysConfig) yosysBinary() string {
	if g.YosysPath != "" {
		return g.YosysPath
	}
	return "yosys"
}

// GetYosysVersion runs the given yosys executable with `-V` to obtain its version.
func GetYosysVersion(yosysPath string) (*semver.Version, error) {
	// Run yosys -V to obtain our toolchain version.
	out, err := exec.Command(yosysPath, "-V").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error while executing yosys:\nOUTPUT:\n%s\nERROR: %s\n", string(out), err.Error())
	}

	// Parse the toolchain version out of the output
	exp := regexp.MustCompile(`\d+\.\d+(\.\d+)?`)
	versionStr := exp.FindString(string(out))
	if versionStr == "" {
		return nil, errors.New("could not parse yosys version using 'yosys -V'")
	}

	// Parse our semver string and return it
	return semver.NewVersion(versionStr)
}

// RenderScript produces the synthesis script contents for the given sources, which must be listed in elaboration
// order. The script elaborates the sources with GHDL, strips formal verification constructs (the target Verilog has
// no equivalent construct, so they are removed rather than translated) and writes the Verilog artifact.
func (g *GhdlYosysConfig) RenderScript(sources []string) string {
	ys := make([]string, 0, len(sources)+4)
	ys = append(ys, fmt.Sprintf("ghdl --ieee=synopsys -fexplicit -frelaxed-rules --std=%s \\", g.Standard))
	for _, source := range sources {
		ys = append(ys, source+" \\")
	}
	ys = append(ys, "-e "+g.TopEntity)
	ys = append(ys, "chformal -assert -remove")
	ys = append(ys, "write_verilog "+g.OutputPath)
	return strings.Join(ys, "\n")
}

// Convert renders the synthesis script, persists it to ScriptPath and invokes yosys over it. On success it returns
// the path of the produced Verilog artifact together with the captured toolchain output. A non-zero exit from yosys
// is fatal and reported as a SynthesisError.
func (g *GhdlYosysConfig) Convert(sources []string) (string, string, error) {
	if len(sources) == 0 {
		return "", "", errors.New("could not convert to verilog: no HDL sources were provided")
	}

	// Every source must already exist locally before a conversion job is constructed.
	for _, source := range sources {
		if !utils.FileExists(source) {
			return "", "", fmt.Errorf("could not convert to verilog: HDL source '%s' does not exist locally", source)
		}
	}

	// Verify the installed toolchain is usable before doing any work.
	version, err := GetYosysVersion(g.yosysBinary())
	if err != nil {
		return "", "", err
	}
	if version.LessThan(minimumYosysVersion) {
		return "", "", fmt.Errorf("unsupported yosys version %s, the ghdl-yosys platform requires %s or newer", version, minimumYosysVersion)
	}

	// Persist the synthesis script, overwriting any previous one.
	if err := os.WriteFile(g.ScriptPath, []byte(g.RenderScript(sources)), 0644); err != nil {
		return "", "", err
	}

	// Invoke yosys with the GHDL plugin over the rendered script. The contract is exit-status-only: the process
	// output is captured for diagnostics but never parsed.
	cmd := exec.Command(g.yosysBinary(), "-q", "-m", "ghdl", g.ScriptPath)
	_, _, cmdCombined, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return "", string(cmdCombined), &SynthesisError{
			Reason: fmt.Sprintf("unable to convert '%s' to verilog", g.TopEntity),
			Hint:   "please check your GHDL-Yosys-plugin install",
			Output: string(cmdCombined),
		}
	}

	return g.OutputPath, string(cmdCombined), nil
}
