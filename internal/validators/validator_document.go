package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/appcfg/models"
)

// Field name constants select which rules [DocumentValidator.Validate]
// runs. Without fields every rule runs, in the order listed here.
const (
	FieldNamespace     = "namespace"
	FieldSDKVersions   = "sdk_versions"
	FieldBuildProfiles = "build_profiles"
	FieldVersionCode   = "version_code"
	FieldVersionName   = "version_name"
	FieldDependencies  = "dependencies"
	FieldDesugaring    = "desugaring"
	FieldPluginOrder   = "plugin_order"
)

// MaxVersionCode is the largest versionCode the platform accepts.
const MaxVersionCode = 2100000000

var defaultFields = []string{
	FieldNamespace,
	FieldSDKVersions,
	FieldBuildProfiles,
	FieldVersionCode,
	FieldVersionName,
	FieldDependencies,
	FieldDesugaring,
	FieldPluginOrder,
}

// DocumentValidator implements [Validator] for [models.Document].
//
// The document's SigningConfigs must already hold every signing
// configuration the profiles may reference, including ones injected from
// outside the document.
type DocumentValidator struct {
	allowedProfiles []string
}

// NewDocumentValidator returns a validator that accepts the given build
// profile names. With no names, [models.DefaultProfiles] are allowed.
func NewDocumentValidator(allowedProfiles ...string) *DocumentValidator {
	if len(allowedProfiles) == 0 {
		allowedProfiles = models.DefaultProfiles
	}

	return &DocumentValidator{allowedProfiles: slices.Clone(allowedProfiles)}
}

// Validate dispatches on the input type. Supported inputs are
// models.Document and *models.Document.
func (v *DocumentValidator) Validate(ctx context.Context, input any, fields ...string) error {
	switch value := input.(type) {
	case models.Document:
		return v.validateDocument(ctx, value, fields...)
	case *models.Document:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateDocument(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateDocument(ctx context.Context, doc models.Document, fields ...string) error {
	if len(fields) == 0 {
		fields = defaultFields
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldNamespace:
			err = validateNamespace(doc)
		case FieldSDKVersions:
			err = validateSDKVersions(doc)
		case FieldBuildProfiles:
			err = v.validateBuildProfiles(doc)
		case FieldVersionCode:
			err = validateVersionCode(doc)
		case FieldVersionName:
			err = validateVersionName(doc)
		case FieldDependencies:
			err = validateDependencies(doc)
		case FieldDesugaring:
			err = validateDesugaring(doc)
		case FieldPluginOrder:
			err = validatePluginOrder(doc)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func validateNamespace(doc models.Document) error {
	if doc.Namespace == "" {
		return &MissingFieldError{Name: "namespace"}
	}
	return nil
}

func validateSDKVersions(doc models.Document) error {
	minSDK, targetSDK, compileSDK := int(doc.MinSDK), int(doc.TargetSDK), int(doc.CompileSDK)
	newErr := func(field, reason string) error {
		return &SdkVersionOrderError{
			Name:       field,
			MinSDK:     minSDK,
			TargetSDK:  targetSDK,
			CompileSDK: compileSDK,
			Reason:     reason,
		}
	}

	for _, lvl := range []struct {
		field string
		value int
	}{
		{"compileSdk", compileSDK},
		{"minSdk", minSDK},
		{"targetSdk", targetSDK},
	} {
		if lvl.value <= 0 {
			return newErr(lvl.field, lvl.field+" must be a positive integer")
		}
	}

	if minSDK > targetSDK {
		return newErr("minSdk", "minSdk must not exceed targetSdk")
	}
	if targetSDK > compileSDK {
		return newErr("targetSdk", "targetSdk must not exceed compileSdk")
	}

	return nil
}

func (v *DocumentValidator) validateBuildProfiles(doc models.Document) error {
	for _, name := range models.OrderedProfileNames(doc.BuildProfiles, v.allowedProfiles) {
		if !slices.Contains(v.allowedProfiles, name) {
			return &UnknownProfileError{Profile: name, Allowed: slices.Clone(v.allowedProfiles)}
		}

		ref := doc.BuildProfiles[name].SigningConfig
		if ref == "" {
			continue
		}
		if _, ok := doc.SigningConfigs[ref]; !ok {
			return &UnresolvedSigningConfigError{Profile: name, Reference: ref}
		}
	}

	return nil
}

func validateVersionCode(doc models.Document) error {
	if doc.VersionCode <= 0 || doc.VersionCode > MaxVersionCode {
		return &InvalidVersionCodeError{Value: doc.VersionCode}
	}
	return nil
}

func validateVersionName(doc models.Document) error {
	if doc.VersionName == "" {
		return &MissingFieldError{Name: "versionName"}
	}
	return nil
}

func validateDependencies(doc models.Document) error {
	for i, dep := range doc.Dependencies {
		if _, err := models.ParseCoordinate(dep.Coordinate); err != nil {
			return &InvalidDependencyError{Index: i, Coordinate: dep.Coordinate, Reason: err.Error()}
		}
		if !models.IsKnownScope(dep.Scope) {
			return &InvalidDependencyError{
				Index:      i,
				Coordinate: dep.Coordinate,
				Reason:     fmt.Sprintf("unknown scope %q", dep.Scope),
			}
		}
	}

	return nil
}

func validateDesugaring(doc models.Document) error {
	hasDesugarLib := slices.ContainsFunc(doc.Dependencies, func(d models.Dependency) bool {
		return d.Scope == models.ScopeCoreLibraryDesugaring
	})
	enabled := doc.CompileOptions.CoreLibraryDesugaringEnabled

	switch {
	case hasDesugarLib && !enabled:
		return &DesugaringError{Reason: "a coreLibraryDesugaring dependency is declared but desugaring is disabled"}
	case enabled && !hasDesugarLib:
		return &DesugaringError{Reason: "desugaring is enabled but no coreLibraryDesugaring dependency is declared"}
	}

	return nil
}

func validatePluginOrder(doc models.Document) error {
	flutterAt := slices.Index(doc.Plugins, models.PluginFlutter)
	if flutterAt < 0 {
		return nil
	}

	for _, required := range []string{
		models.PluginAndroidApplication,
		models.PluginKotlinAndroid,
		models.PluginKotlinAndroidFull,
	} {
		if at := slices.Index(doc.Plugins, required); at > flutterAt {
			return &PluginOrderError{Plugin: models.PluginFlutter, MustFollow: required}
		}
	}

	return nil
}
