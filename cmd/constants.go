package cmd

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "socforge.json"

// DefaultSynthesisPlatform describes the default synthesis platform to use if one is not provided.
const DefaultSynthesisPlatform = "ghdl-yosys"
