package models

import (
	"fmt"
	"strings"
)

// RedactedSecret replaces secret values in every rendered output.
const RedactedSecret = "********"

// SigningConfig is a named set of credentials used to sign an artifact.
type SigningConfig struct {
	// Name is the key of the configuration in the signing mapping. It is
	// filled in by the resolver and never read from a document.
	Name string `json:"name,omitempty" toml:"-"`

	StoreFile     string `json:"storeFile,omitempty" toml:"store_file"`
	StorePassword string `json:"storePassword,omitempty" toml:"store_password"`
	StoreType     string `json:"storeType,omitempty" toml:"store_type"`
	KeyAlias      string `json:"keyAlias,omitempty" toml:"key_alias"`
	KeyPassword   string `json:"keyPassword,omitempty" toml:"key_password"`
}

// Redacted returns a copy of s with both passwords masked.
func (s SigningConfig) Redacted() SigningConfig {
	if s.StorePassword != "" {
		s.StorePassword = RedactedSecret
	}
	if s.KeyPassword != "" {
		s.KeyPassword = RedactedSecret
	}
	return s
}

// Dependency scopes understood by the resolver.
const (
	ScopeImplementation        = "implementation"
	ScopeAPI                   = "api"
	ScopeCompileOnly           = "compileOnly"
	ScopeRuntimeOnly           = "runtimeOnly"
	ScopeTestImplementation    = "testImplementation"
	ScopeAndroidTest           = "androidTestImplementation"
	ScopeDebugImplementation   = "debugImplementation"
	ScopeReleaseImplementation = "releaseImplementation"
	ScopeAnnotationProcessor   = "annotationProcessor"
	ScopeCoreLibraryDesugaring = "coreLibraryDesugaring"
)

var knownScopes = map[string]struct{}{
	ScopeImplementation:        {},
	ScopeAPI:                   {},
	ScopeCompileOnly:           {},
	ScopeRuntimeOnly:           {},
	ScopeTestImplementation:    {},
	ScopeAndroidTest:           {},
	ScopeDebugImplementation:   {},
	ScopeReleaseImplementation: {},
	ScopeAnnotationProcessor:   {},
	ScopeCoreLibraryDesugaring: {},
}

// IsKnownScope reports whether scope is a supported dependency scope.
func IsKnownScope(scope string) bool {
	_, ok := knownScopes[scope]
	return ok
}

// Dependency is a single external library declaration.
type Dependency struct {
	// Coordinate is a "group:artifact:version" triple.
	Coordinate string `json:"coordinate" toml:"coordinate"`
	Scope      string `json:"scope" toml:"scope"`
}

// Coordinate is a parsed dependency coordinate.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

// ParseCoordinate splits a "group:artifact:version" string. Every part must
// be non-empty.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Coordinate{}, fmt.Errorf("coordinate %q must have the form group:artifact:version", s)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return Coordinate{}, fmt.Errorf("coordinate %q has an empty part", s)
		}
	}

	return Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}, nil
}

func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}
