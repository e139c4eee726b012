// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"io"
	"os"
	"time"

	"github.com/MKhiriev/appcfg/internal/report"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "APPCFG_"

// Commands understood by appcfg.
const (
	CommandValidate = "validate"
	CommandPrint    = "print"
	CommandQuery    = "query"
	CommandWatch    = "watch"
	CommandVersion  = "version"
)

// Commands lists every command; the first one is the default.
var Commands = []string{CommandValidate, CommandPrint, CommandQuery, CommandWatch, CommandVersion}

// StructuredConfig is the top-level configuration container for appcfg. It
// aggregates all sub-configurations and is populated by merging defaults,
// an optional JSON file, environment variables and command-line flags.
//
// Struct tags:
//   - env: variable name below [EnvPrefix] for scalar fields (caarlos0/env).
//   - envSeparator: separator for list-valued variables.
type StructuredConfig struct {
	// Document selects and adjusts the build configuration document.
	Document Document

	// Output controls how results are rendered.
	Output Output

	// Keystores controls signing store verification.
	Keystores Keystores

	// Log holds logging settings.
	Log Log

	// Watch holds settings of the watch command.
	Watch Watch

	// Command is the first positional argument; Args are the rest.
	Command string   `env:"-"`
	Args    []string `env:"-"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the APPCFG_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Document holds settings about the document being resolved.
type Document struct {
	// Path is the document file (.json, .hcl or .toml).
	// Env: APPCFG_FILE
	Path string `env:"FILE"`

	// Overrides are path=value assignments applied after loading.
	// Flags only (-set, repeatable) or the JSON file.
	Overrides []string `env:"-"`

	// DefaultNDKVersion is used when the document omits ndkVersion.
	// Env: APPCFG_DEFAULT_NDK
	DefaultNDKVersion string `env:"DEFAULT_NDK"`

	// Profiles is the allowed set of build profile names, in reporting
	// order. Empty means release, debug.
	// Env: APPCFG_PROFILES (comma separated)
	Profiles []string `env:"PROFILES" envSeparator:","`

	// SigningConfigsFile is a JSON file mapping signing configuration names
	// to credentials, combined with those declared in the document.
	// Env: APPCFG_SIGNING_CONFIGS
	SigningConfigsFile string `env:"SIGNING_CONFIGS"`
}

// Output holds rendering settings.
type Output struct {
	// Format is "text" or "json".
	// Env: APPCFG_FORMAT
	Format string `env:"FORMAT"`

	// Profile restricts output to one build variant.
	// Env: APPCFG_PROFILE
	Profile string `env:"PROFILE"`

	// Writer receives rendered output. Defaults to os.Stdout.
	Writer io.Writer `env:"-"`
}

// Keystores holds signing store verification settings.
type Keystores struct {
	// Verify opens every referenced signing store after resolution.
	// Nil means not set by this source, so an explicit false from a
	// higher-priority source still wins.
	// Env: APPCFG_VERIFY_KEYSTORES
	Verify *bool `env:"VERIFY_KEYSTORES"`
}

// Enabled reports whether keystore verification was switched on.
func (k Keystores) Enabled() bool {
	return k.Verify != nil && *k.Verify
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name (debug, info, warn, error).
	// Env: APPCFG_LOG_LEVEL
	Level string `env:"LOG_LEVEL"`
}

// Watch holds settings of the watch command.
type Watch struct {
	// Debounce is the quiet period after a change before re-resolving
	// (e.g. "200ms").
	// Env: APPCFG_WATCH_DEBOUNCE
	Debounce time.Duration `env:"WATCH_DEBOUNCE"`
}

// defaults returns the lowest-priority configuration.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Output:  Output{Format: report.FormatText, Writer: os.Stdout},
		Log:     Log{Level: "warn"},
		Watch:   Watch{Debounce: 200 * time.Millisecond},
		Command: CommandValidate,
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources for the given command-line arguments (without the
// program name). Usage text for -h and flag errors is written to os.Stderr.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation. -h and -help return
// an error matching flag.ErrHelp.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args, os.Stderr).
		withJSON().
		build()
}
