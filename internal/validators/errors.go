package validators

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is wrapped by every validation failure, so callers can tell
// a rejected document apart from I/O or usage errors with errors.Is.
var ErrValidation = errors.New("invalid build configuration")

// Per-kind sentinels. Each typed error below unwraps to one of these.
var (
	ErrMissingField            = fmt.Errorf("%w: missing field", ErrValidation)
	ErrSdkVersionOrder         = fmt.Errorf("%w: sdk version order", ErrValidation)
	ErrUnresolvedSigningConfig = fmt.Errorf("%w: unresolved signing config", ErrValidation)
	ErrInvalidVersionCode      = fmt.Errorf("%w: invalid version code", ErrValidation)
	ErrUnknownProfile          = fmt.Errorf("%w: unknown build profile", ErrValidation)
	ErrInvalidDependency       = fmt.Errorf("%w: invalid dependency", ErrValidation)
	ErrDesugaring              = fmt.Errorf("%w: desugaring misconfigured", ErrValidation)
	ErrPluginOrder             = fmt.Errorf("%w: plugin order", ErrValidation)
)

// Errors about the validator call itself, not about the document.
var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// ValidationError is implemented by every typed validation failure.
// Field names the offending document field in JSON path form.
type ValidationError interface {
	error
	Field() string
}

// MissingFieldError reports a required field that is absent or empty.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Name)
}
func (e *MissingFieldError) Field() string { return e.Name }
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// SdkVersionOrderError reports SDK levels that are non-positive or violate
// minSdk <= targetSdk <= compileSdk.
type SdkVersionOrderError struct {
	// Name is the field that broke the rule.
	Name       string
	MinSDK     int
	TargetSDK  int
	CompileSDK int
	Reason     string
}

func (e *SdkVersionOrderError) Error() string {
	return fmt.Sprintf("invalid sdk versions (minSdk=%d, targetSdk=%d, compileSdk=%d): %s",
		e.MinSDK, e.TargetSDK, e.CompileSDK, e.Reason)
}
func (e *SdkVersionOrderError) Field() string { return e.Name }
func (e *SdkVersionOrderError) Unwrap() error { return ErrSdkVersionOrder }

// UnresolvedSigningConfigError reports a build profile whose signing
// reference is not a declared signing configuration.
type UnresolvedSigningConfigError struct {
	Profile   string
	Reference string
}

func (e *UnresolvedSigningConfigError) Error() string {
	return fmt.Sprintf("build profile %q references undeclared signing config %q", e.Profile, e.Reference)
}
func (e *UnresolvedSigningConfigError) Field() string {
	return "buildProfiles." + e.Profile + ".signingConfig"
}
func (e *UnresolvedSigningConfigError) Unwrap() error { return ErrUnresolvedSigningConfig }

// InvalidVersionCodeError reports a version code outside (0, MaxVersionCode].
type InvalidVersionCodeError struct {
	Value int64
}

func (e *InvalidVersionCodeError) Error() string {
	return fmt.Sprintf("versionCode must be a positive integer not greater than %d, got %d", MaxVersionCode, e.Value)
}
func (e *InvalidVersionCodeError) Field() string { return "versionCode" }
func (e *InvalidVersionCodeError) Unwrap() error { return ErrInvalidVersionCode }

// UnknownProfileError reports a build profile name outside the allowed set.
type UnknownProfileError struct {
	Profile string
	Allowed []string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown build profile %q (allowed: %s)", e.Profile, strings.Join(e.Allowed, ", "))
}
func (e *UnknownProfileError) Field() string { return "buildProfiles." + e.Profile }
func (e *UnknownProfileError) Unwrap() error { return ErrUnknownProfile }

// InvalidDependencyError reports a malformed dependency declaration.
type InvalidDependencyError struct {
	Index      int
	Coordinate string
	Reason     string
}

func (e *InvalidDependencyError) Error() string {
	return fmt.Sprintf("dependency %q: %s", e.Coordinate, e.Reason)
}
func (e *InvalidDependencyError) Field() string { return fmt.Sprintf("dependencies[%d]", e.Index) }
func (e *InvalidDependencyError) Unwrap() error { return ErrInvalidDependency }

// DesugaringError reports a core library desugaring flag that does not
// match the declared dependencies.
type DesugaringError struct {
	Reason string
}

func (e *DesugaringError) Error() string { return "core library desugaring: " + e.Reason }
func (e *DesugaringError) Field() string {
	return "compileOptions.coreLibraryDesugaringEnabled"
}
func (e *DesugaringError) Unwrap() error { return ErrDesugaring }

// PluginOrderError reports a plugin applied before one it depends on.
type PluginOrderError struct {
	Plugin     string
	MustFollow string
}

func (e *PluginOrderError) Error() string {
	return fmt.Sprintf("plugin %q must be applied after %q", e.Plugin, e.MustFollow)
}
func (e *PluginOrderError) Field() string { return "plugins" }
func (e *PluginOrderError) Unwrap() error { return ErrPluginOrder }
