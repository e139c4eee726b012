package models

import "slices"

// Build profile names every application module declares.
const (
	ProfileRelease = "release"
	ProfileDebug   = "debug"
)

// DefaultProfiles is the fixed set of build profile names, in the order
// they are resolved and reported.
var DefaultProfiles = []string{ProfileRelease, ProfileDebug}

// ProfileOverrides carries the per-build-type settings that are applied on
// top of the shared [AppConfig].
//
// Boolean settings are pointers so that an explicit false in a document can
// be told apart from an omitted value.
type ProfileOverrides struct {
	// SigningConfig names an entry of the signing configuration mapping.
	// Empty means the profile output is unsigned.
	SigningConfig string `json:"signingConfig,omitempty" toml:"signing_config"`

	ApplicationIDSuffix string `json:"applicationIdSuffix,omitempty" toml:"application_id_suffix"`
	VersionNameSuffix   string `json:"versionNameSuffix,omitempty" toml:"version_name_suffix"`

	Debuggable    *bool `json:"debuggable,omitempty" toml:"debuggable"`
	MinifyEnabled *bool `json:"minifyEnabled,omitempty" toml:"minify_enabled"`
}

// Clone returns a copy of p that shares no pointers with p.
func (p ProfileOverrides) Clone() ProfileOverrides {
	out := p
	if p.Debuggable != nil {
		out.Debuggable = Bool(*p.Debuggable)
	}
	if p.MinifyEnabled != nil {
		out.MinifyEnabled = Bool(*p.MinifyEnabled)
	}
	return out
}

// BuildProfile is a resolved build type: its name and the overrides that
// produced its variant.
type BuildProfile struct {
	Name string `json:"name"`
	ProfileOverrides
}

// Bool returns a pointer to a fresh copy of b.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to a fresh copy of s.
func String(s string) *string {
	return &s
}

// OrderedProfileNames returns the keys of profiles with the names listed in
// preferred first (in that order), followed by the remaining names sorted.
func OrderedProfileNames(profiles map[string]ProfileOverrides, preferred []string) []string {
	names := make([]string, 0, len(profiles))
	seen := make(map[string]struct{}, len(profiles))
	for _, name := range preferred {
		if _, ok := profiles[name]; ok {
			if _, dup := seen[name]; !dup {
				names = append(names, name)
				seen[name] = struct{}{}
			}
		}
	}

	rest := make([]string, 0, len(profiles))
	for name := range profiles {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)

	return append(names, rest...)
}
