package meta

const (
	// CLIName is the name of the binary and the prefix for
	// environment variable based configuration.
	CLIName = "grafimport"
)
