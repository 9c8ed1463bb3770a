package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grafops/grafimport/internal/meta"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var defaultConfigFileName = "config.yaml"

// Returns the expanded default config path depending on what
// environment variables are set. If XDG_CONFIG_HOME is set,
// the default is $XDG_CONFIG_HOME/grafimport,
// otherwise the default is os.UserHomeDir()/.config/grafimport.
func GetDefaultConfigPath() (string, error) {
	val, set := os.LookupEnv("XDG_CONFIG_HOME")
	if !set || val == "" {
		var err error
		val, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
		val = filepath.Join(val, ".config")
	}
	val = filepath.Join(val, meta.CLIName)
	return os.ExpandEnv(val), nil
}

func GetDefaultConfigFilePath() (string, error) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(path, defaultConfigFileName), nil
}

// Empty type to represent the _type_ Config. Genesis is to support a key in a Context
type Key struct{}

// ConfigKey is a global instance of the Key type
var ConfigKey = Key{}

// Hook provides a generalization of the Viper interface used by commands,
// restricting interactions with the configuration system to what they need.
type Hook interface {
	// GetString returns a string value from the configuration
	GetString(key string) string
	// GetBool returns a boolean value from the configuration
	GetBool(key string) bool
	// GetInt returns an integer value from the configuration
	GetInt(key string) int
	// GetIntOrElse returns an integer value from the configuration or a default
	GetIntOrElse(key string, orElse int) int
	// GetDuration returns a duration value from the configuration
	GetDuration(key string) time.Duration
	// SetString sets an override for a given string
	SetString(key string, value string)
	// BindFlag takes a specific configuration path and binds it to a specific flag
	BindFlag(configPath string, f *pflag.Flag) error
	// The file path used to load this configuration, empty when no file was found
	GetPath() string
}

// Config is a Viper-backed Hook. Flag and environment bindings take
// precedence over file values following viper's built-in priorities.
type Config struct {
	*v.Viper
	Path string
}

func (c *Config) GetIntOrElse(key string, orElse int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}
	return orElse
}

func (c *Config) BindFlag(configPath string, f *pflag.Flag) error {
	return c.BindPFlag(configPath, f)
}

func (c *Config) SetString(k string, val string) {
	c.Set(k, val)
}

func (c *Config) GetPath() string {
	return c.Path
}

// GetConfig returns the configuration for this instance of the CLI.
// A missing file at the default path is not an error; the tool is fully
// configurable by flags and environment variables alone.
func GetConfig(path string, defaultConfigFilePath string) (*Config, error) {
	path = os.ExpandEnv(path)

	vip := v.New()
	vip.SetConfigFile(path)
	vip.AutomaticEnv()
	vip.SetEnvPrefix(strings.ToUpper(meta.CLIName))
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	err := vip.ReadInConfig()
	if err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) && path == defaultConfigFilePath {
			return &Config{Viper: vip, Path: ""}, nil
		}
		return nil, err
	}
	return &Config{Viper: vip, Path: path}, nil
}
