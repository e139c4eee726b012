// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
)

// AppConfig is the fully resolved configuration of an application module.
// It is produced by the resolver and treated as immutable: every operation
// that derives a new AppConfig works on a [AppConfig.Clone].
type AppConfig struct {
	Namespace     string `json:"namespace"`
	ApplicationID string `json:"applicationId"`

	CompileSDK int `json:"compileSdk"`
	MinSDK     int `json:"minSdk"`
	TargetSDK  int `json:"targetSdk"`

	VersionCode int64  `json:"versionCode"`
	VersionName string `json:"versionName"`

	// NDKVersion is absent when neither the document nor the resolver
	// defaults pin a native toolchain version.
	NDKVersion Optional[string] `json:"ndkVersion"`

	CompileOptions  CompileOptions `json:"compileOptions"`
	JVMTarget       string         `json:"jvmTarget,omitempty"`
	FrameworkSource string         `json:"frameworkSource,omitempty"`

	Plugins      []string     `json:"plugins,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`

	// Profile-specific settings, zero on the shared base configuration and
	// filled in by merging a [ProfileOverrides].
	SigningConfig       string `json:"signingConfig,omitempty"`
	ApplicationIDSuffix string `json:"applicationIdSuffix,omitempty"`
	VersionNameSuffix   string `json:"versionNameSuffix,omitempty"`
	Debuggable          bool   `json:"debuggable"`
	MinifyEnabled       bool   `json:"minifyEnabled"`
}

// Clone returns a copy of c that shares no slices with c.
func (c AppConfig) Clone() AppConfig {
	out := c
	out.Plugins = slices.Clone(c.Plugins)
	out.Dependencies = slices.Clone(c.Dependencies)
	return out
}

// EffectiveApplicationID is the application id with the profile suffix.
func (c AppConfig) EffectiveApplicationID() string {
	return c.ApplicationID + c.ApplicationIDSuffix
}

// EffectiveVersionName is the version name with the profile suffix.
func (c AppConfig) EffectiveVersionName() string {
	return c.VersionName + c.VersionNameSuffix
}

// Overrides extracts the profile-specific settings of c. Booleans are
// returned as fresh pointers.
func (c AppConfig) Overrides() ProfileOverrides {
	return ProfileOverrides{
		SigningConfig:       c.SigningConfig,
		ApplicationIDSuffix: c.ApplicationIDSuffix,
		VersionNameSuffix:   c.VersionNameSuffix,
		Debuggable:          Bool(c.Debuggable),
		MinifyEnabled:       Bool(c.MinifyEnabled),
	}
}

// WithOverrides returns a copy of c with the profile-specific settings
// replaced by p. Nil booleans in p leave the current value untouched.
func (c AppConfig) WithOverrides(p ProfileOverrides) AppConfig {
	out := c.Clone()
	out.SigningConfig = p.SigningConfig
	out.ApplicationIDSuffix = p.ApplicationIDSuffix
	out.VersionNameSuffix = p.VersionNameSuffix
	if p.Debuggable != nil {
		out.Debuggable = *p.Debuggable
	}
	if p.MinifyEnabled != nil {
		out.MinifyEnabled = *p.MinifyEnabled
	}
	return out
}

// ResolvedConfig is the output of a successful resolution: the shared base
// configuration, every build profile, and the per-profile variant produced
// by merging the profile onto the base.
type ResolvedConfig struct {
	App            AppConfig                `json:"app"`
	Profiles       map[string]BuildProfile  `json:"profiles"`
	Variants       map[string]AppConfig     `json:"variants"`
	SigningConfigs map[string]SigningConfig `json:"signingConfigs,omitempty"`

	// ProfileOrder lists profile names in resolution order.
	ProfileOrder []string `json:"-"`
}

// Redacted returns a copy of r whose signing passwords are masked.
func (r ResolvedConfig) Redacted() ResolvedConfig {
	out := r
	out.SigningConfigs = make(map[string]SigningConfig, len(r.SigningConfigs))
	for name, sc := range r.SigningConfigs {
		out.SigningConfigs[name] = sc.Redacted()
	}
	out.Profiles = maps.Clone(r.Profiles)
	out.Variants = maps.Clone(r.Variants)
	out.ProfileOrder = slices.Clone(r.ProfileOrder)
	return out
}
