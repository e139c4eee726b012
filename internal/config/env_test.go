// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"APPCFG_CONFIG": "/path/to/config.json",

		"APPCFG_FILE":            "app.hcl",
		"APPCFG_DEFAULT_NDK":     "26.1.10909125",
		"APPCFG_PROFILES":        "release,debug,staging",
		"APPCFG_SIGNING_CONFIGS": "/secrets/signing.json",

		"APPCFG_FORMAT":  "json",
		"APPCFG_PROFILE": "release",

		"APPCFG_VERIFY_KEYSTORES": "true",
		"APPCFG_LOG_LEVEL":        "debug",
		"APPCFG_WATCH_DEBOUNCE":   "500ms",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "app.hcl", cfg.Document.Path)
	assert.Equal(t, "26.1.10909125", cfg.Document.DefaultNDKVersion)
	assert.Equal(t, []string{"release", "debug", "staging"}, cfg.Document.Profiles)
	assert.Equal(t, "/secrets/signing.json", cfg.Document.SigningConfigsFile)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "release", cfg.Output.Profile)

	require.NotNil(t, cfg.Keystores.Verify)
	assert.True(t, *cfg.Keystores.Verify)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"APPCFG_FILE": "app.json",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "app.json", cfg.Document.Path)
	assert.Empty(t, cfg.Document.DefaultNDKVersion)
	assert.Empty(t, cfg.Output.Format)
	assert.Nil(t, cfg.Keystores.Verify)
	assert.Zero(t, cfg.Watch.Debounce)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_IgnoresUnprefixedNames(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"FILE":   "unprefixed.json",
		"FORMAT": "json",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cfg.Document.Path)
	assert.Empty(t, cfg.Output.Format)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"APPCFG_WATCH_DEBOUNCE": "soon"})

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}
