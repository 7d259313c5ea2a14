// Package config loads runtime settings for the prostvm CLI: trace
// level, host-library search paths, and the verbose-summary default. It layers a
// prostvm.yaml file under viper with PROSTVM_*-prefixed environment
// overrides, the same combination other tooling in this ecosystem wires
// together for CLI-adjacent configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the decoded shape of prostvm.yaml / PROSTVM_* environment
// variables.
type Config struct {
	// TraceLevel holds the configured engine log verbosity: "", "debug",
	// or "error". It is decoded only; the run command does not apply it
	// to the engine's logger.
	TraceLevel string `mapstructure:"trace_level" yaml:"trace_level"`
	// LibraryPaths are directories searched, in order, for a named
	// dynamic host library when a bare name (not a path) is given to
	// --library.
	LibraryPaths []string `mapstructure:"library_paths" yaml:"library_paths"`
	// Verbose enables the post-run summary by default.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// Default returns the zero-configuration defaults: no trace, no extra
// library search paths, summaries off.
func Default() Config {
	return Config{TraceLevel: "", LibraryPaths: nil, Verbose: false}
}

// Load reads configuration from configPath if non-empty (or else from the
// first prostvm.yaml found in the working directory or $HOME, if any),
// then applies any
// PROSTVM_* environment overrides, falling back to Default() for
// anything left unset.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("prostvm")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("PROSTVM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("trace_level", def.TraceLevel)
	v.SetDefault("library_paths", def.LibraryPaths)
	v.SetDefault("verbose", def.Verbose)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
