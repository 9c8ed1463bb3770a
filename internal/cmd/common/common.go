package common

import "fmt"

// Represents an enum of valid values for the format of the output for this CLI execution
type OutputFormat int

const (
	JSON OutputFormat = iota
	YAML
	TEXT
)

const (
	// related to the --output flag
	DefaultOutputFormat = "text"
	OutputFlagName      = "output"
	OutputFlagShort     = "o"
	OutputConfigPath    = OutputFlagName

	// related to the --config-file flag
	ConfigFilePathFlagName = "config-file"

	// related to the --log-level flag
	LogLevelFlagName   = "log-level"
	DefaultLogLevel    = "warn"
	LogLevelConfigPath = LogLevelFlagName

	// connection settings, shared by every importer
	URLFlagName       = "url"
	URLConfigPath     = URLFlagName
	TokenFlagName     = "token"
	TokenConfigPath   = TokenFlagName
	TimeoutFlagName   = "timeout"
	TimeoutConfigPath = TimeoutFlagName

	// projection settings
	PrefixFlagName       = "prefix"
	DefaultPrefix        = "imported"
	PrefixConfigPath     = PrefixFlagName
	OutputDirFlagName    = "output-dir"
	DefaultOutputDir     = "./generated"
	OutputDirConfigPath  = OutputDirFlagName
	ModeFlagName         = "mode"
	ModeConfigPath       = ModeFlagName
	TerraformBinFlagName = "terraform-bin"
	TerraformBinPath     = TerraformBinFlagName
)

func (of OutputFormat) String() string {
	return [...]string{"json", "yaml", "text"}[of]
}

func OutputFormatStringToIota(format string) (OutputFormat, error) {
	switch format {
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	case "text":
		return TEXT, nil
	default:
		return TEXT, fmt.Errorf("invalid output format %q, must be one of %v",
			format, []string{"json", "yaml", "text"})
	}
}
