// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
)

// Well-known plugin identifiers of an application module.
const (
	// PluginAndroidApplication is the Android application plugin.
	PluginAndroidApplication = "com.android.application"

	// PluginKotlinAndroid is the short Kotlin Android plugin id.
	PluginKotlinAndroid = "kotlin-android"

	// PluginKotlinAndroidFull is the fully-qualified Kotlin Android plugin id.
	PluginKotlinAndroidFull = "org.jetbrains.kotlin.android"

	// PluginFlutter is the Flutter Gradle plugin. It must be applied after
	// the Android and Kotlin plugins.
	PluginFlutter = "dev.flutter.flutter-gradle-plugin"
)

// Document is the format-agnostic representation of a build configuration
// document as read from disk. Every loader (JSON, HCL, TOML) produces a
// Document; the resolver turns it into an [AppConfig].
//
// Zero values mean "not set". Shared defaults are applied on top of a
// Document before it is resolved.
type Document struct {
	// Namespace is the reverse-domain package name (e.g. "com.example.app").
	Namespace string `json:"namespace,omitempty" toml:"namespace"`

	// ApplicationID is the published application id. Defaults to Namespace.
	ApplicationID string `json:"applicationId,omitempty" toml:"application_id"`

	// CompileSDK is the platform API level the module is compiled against.
	CompileSDK SDKLevel `json:"compileSdk,omitempty" toml:"compile_sdk"`

	// MinSDK is the lowest platform API level the application supports.
	MinSDK SDKLevel `json:"minSdk,omitempty" toml:"min_sdk"`

	// TargetSDK is the platform API level the application is tested against.
	TargetSDK SDKLevel `json:"targetSdk,omitempty" toml:"target_sdk"`

	// VersionCode is the internal, monotonically increasing release number.
	VersionCode int64 `json:"versionCode,omitempty" toml:"version_code"`

	// VersionName is the user-visible version string (e.g. "1.0.0").
	VersionName string `json:"versionName,omitempty" toml:"version_name"`

	// NDKVersion pins the native toolchain version. Nil when omitted.
	NDKVersion *string `json:"ndkVersion,omitempty" toml:"ndk_version"`

	CompileOptions CompileOptions `json:"compileOptions" toml:"compile_options"`
	KotlinOptions  KotlinOptions  `json:"kotlinOptions" toml:"kotlin_options"`
	Flutter        FlutterOptions `json:"flutter" toml:"flutter"`

	// Plugins lists applied plugin ids in application order.
	Plugins []string `json:"plugins,omitempty" toml:"plugins"`

	// BuildProfiles maps a build type name (release, debug) to its overrides.
	BuildProfiles map[string]ProfileOverrides `json:"buildProfiles,omitempty" toml:"build_profiles"`

	// SigningConfigs maps a signing configuration name to its credentials.
	SigningConfigs map[string]SigningConfig `json:"signingConfigs,omitempty" toml:"signing_configs"`

	Dependencies []Dependency `json:"dependencies,omitempty" toml:"dependencies"`
}

// CompileOptions holds Java language level settings.
type CompileOptions struct {
	SourceCompatibility          string `json:"sourceCompatibility,omitempty" toml:"source_compatibility"`
	TargetCompatibility          string `json:"targetCompatibility,omitempty" toml:"target_compatibility"`
	CoreLibraryDesugaringEnabled bool   `json:"coreLibraryDesugaringEnabled,omitempty" toml:"core_library_desugaring_enabled"`
}

// KotlinOptions holds Kotlin compiler settings.
type KotlinOptions struct {
	JVMTarget string `json:"jvmTarget,omitempty" toml:"jvm_target"`
}

// FlutterOptions points at the Flutter project root relative to the module.
type FlutterOptions struct {
	Source string `json:"source,omitempty" toml:"source"`
}

// Clone returns a deep copy of d. Maps, slices and pointers are never
// shared between the copy and the original.
func (d Document) Clone() Document {
	out := d
	if d.NDKVersion != nil {
		v := *d.NDKVersion
		out.NDKVersion = &v
	}
	out.Plugins = slices.Clone(d.Plugins)
	out.Dependencies = slices.Clone(d.Dependencies)
	out.SigningConfigs = maps.Clone(d.SigningConfigs)

	if d.BuildProfiles != nil {
		out.BuildProfiles = make(map[string]ProfileOverrides, len(d.BuildProfiles))
		for name, p := range d.BuildProfiles {
			out.BuildProfiles[name] = p.Clone()
		}
	}

	return out
}
