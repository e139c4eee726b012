package config

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation because no document is named.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingDocumentPath)
}

// TestBuild_Defaults verifies the values every run starts from.
func TestBuild_Defaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Document: Document{Path: "app.json"}})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, CommandValidate, cfg.Command)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, os.Stdout, cfg.Output.Writer)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesWin verifies that a later non-zero field overrides
// an earlier one, while zero fields keep earlier values.
func TestBuild_LaterSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Document: Document{Path: "env.json", DefaultNDKVersion: "26.1.10909125"}},
		&StructuredConfig{Document: Document{Path: "flag.json"}, Output: Output{Format: "json"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag.json", cfg.Document.Path)
	assert.Equal(t, "26.1.10909125", cfg.Document.DefaultNDKVersion)
	assert.Equal(t, "json", cfg.Output.Format)
}

// TestBuild_SlicesAreReplaced verifies that list settings from a later
// source replace, not extend, earlier ones.
func TestBuild_SlicesAreReplaced(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Document: Document{Path: "a.json", Overrides: []string{"versionCode=1"}}},
		&StructuredConfig{Document: Document{Overrides: []string{"versionCode=2"}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, []string{"versionCode=2"}, cfg.Document.Overrides)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg := defaults()
		cfg.Document.Path = "app.json"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "unknown command", mutate: func(c *StructuredConfig) { c.Command = "build" }, wantErr: ErrUnknownCommand},
		{name: "query without path", mutate: func(c *StructuredConfig) { c.Command = CommandQuery }, wantErr: ErrMissingQueryPath},
		{name: "query with two paths", mutate: func(c *StructuredConfig) {
			c.Command = CommandQuery
			c.Args = []string{"a", "b"}
		}, wantErr: ErrMissingQueryPath},
		{name: "query with path", mutate: func(c *StructuredConfig) {
			c.Command = CommandQuery
			c.Args = []string{"app.compileSdk"}
		}},
		{name: "print with args", mutate: func(c *StructuredConfig) {
			c.Command = CommandPrint
			c.Args = []string{"x"}
		}, wantErr: ErrUnexpectedArgs},
		{name: "missing document", mutate: func(c *StructuredConfig) { c.Document.Path = "" }, wantErr: ErrMissingDocumentPath},
		{name: "version needs no document", mutate: func(c *StructuredConfig) {
			c.Command = CommandVersion
			c.Document.Path = ""
		}},
		{name: "bad format", mutate: func(c *StructuredConfig) { c.Output.Format = "yaml" }, wantErr: ErrInvalidFormat},
		{name: "bad log level", mutate: func(c *StructuredConfig) { c.Log.Level = "loud" }, wantErr: ErrInvalidLogLevel},
		{name: "negative debounce", mutate: func(c *StructuredConfig) { c.Watch.Debounce = -time.Second }, wantErr: ErrInvalidDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that prefixed environment variables are
// picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APPCFG_FILE", "env.hcl")
	t.Setenv("APPCFG_FORMAT", "json")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env.hcl", b.configs[0].Document.Path)
	assert.Equal(t, "json", b.configs[0].Output.Format)
}

// TestWithEnv_SetsErrorOnBadValue verifies that an unconvertible value is
// reported.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("APPCFG_VERIFY_KEYSTORES", "maybe")

	b := newConfigBuilder()
	b.withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil, io.Discard))
}

// TestWithFlags_SetsErrorOnUnknownFlag verifies that parse failures are
// collected.
func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-nope"}, io.Discard)
	assert.Error(t, b.err)
}

// TestWithFlags_Help verifies that -h surfaces flag.ErrHelp.
func TestWithFlags_Help(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-h"}, io.Discard)

	_, err := b.build()
	assert.ErrorIs(t, err, flag.ErrHelp)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_PrependsConfig_WhenValidFile verifies that a valid JSON file
// is parsed and placed before the other sources.
func TestWithJSON_PrependsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Document.Path = "json.toml"
	payload.Output.Format = "json"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json.toml", b.configs[0].Document.Path)
	assert.Equal(t, "json", b.configs[0].Output.Format)
}

// TestWithJSON_LowestPriority verifies that env and flag values win over the
// JSON file.
func TestWithJSON_LowestPriority(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Document.Path = "json.toml"
	payload.Document.DefaultNDKVersion = "25.2.9519653"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path, Document: Document{Path: "flag.json"}})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "flag.json", cfg.Document.Path)
	assert.Equal(t, "25.2.9519653", cfg.Document.DefaultNDKVersion)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.Log.Level = "debug"
	last := StructuredJSONConfig{}
	last.Log.Level = "error"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "error", b.configs[0].Log.Level)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_FlagsOverrideEnv verifies the full pipeline.
func TestGetStructuredConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("APPCFG_FILE", "env.json")
	t.Setenv("APPCFG_LOG_LEVEL", "debug")

	cfg, err := GetStructuredConfig([]string{"-f", "flag.json", "-set", "versionCode=2", "query", "app.namespace"})
	require.NoError(t, err)

	assert.Equal(t, "flag.json", cfg.Document.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"versionCode=2"}, cfg.Document.Overrides)
	assert.Equal(t, CommandQuery, cfg.Command)
	assert.Equal(t, []string{"app.namespace"}, cfg.Args)
}

// TestGetStructuredConfig_FlagFalseOverridesEnv verifies that an explicit
// false flag switches off a boolean enabled by the environment.
func TestGetStructuredConfig_FlagFalseOverridesEnv(t *testing.T) {
	t.Setenv("APPCFG_VERIFY_KEYSTORES", "true")

	cfg, err := GetStructuredConfig([]string{"-f", "app.json", "-verify-keystores=false"})
	require.NoError(t, err)

	require.NotNil(t, cfg.Keystores.Verify)
	assert.False(t, cfg.Keystores.Enabled())
}

// TestGetStructuredConfig_UnsetFlagKeepsEnv verifies that a boolean flag
// that was not passed leaves the environment value alone.
func TestGetStructuredConfig_UnsetFlagKeepsEnv(t *testing.T) {
	t.Setenv("APPCFG_VERIFY_KEYSTORES", "true")

	cfg, err := GetStructuredConfig([]string{"-f", "app.json"})
	require.NoError(t, err)
	assert.True(t, cfg.Keystores.Enabled())
}

// TestBuild_EnvFalseOverridesJSON verifies that a false from a later source
// replaces a true from the JSON file.
func TestBuild_EnvFalseOverridesJSON(t *testing.T) {
	on, off := true, false
	payload := StructuredJSONConfig{}
	payload.Document.Path = "app.json"
	payload.Keystores.Verify = &on
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path, Keystores: Keystores{Verify: &off}})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.False(t, cfg.Keystores.Enabled())
}
