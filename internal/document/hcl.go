package document

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/MKhiriev/appcfg/models"
)

// hclDocument is the top-level structure of an HCL document for decoding.
// Every attribute is optional so that missing values reach the validators
// and are reported as validation errors rather than parse errors.
type hclDocument struct {
	Namespace     string   `hcl:"namespace,optional"`
	ApplicationID string   `hcl:"application_id,optional"`
	CompileSDK    int      `hcl:"compile_sdk,optional"`
	MinSDK        int      `hcl:"min_sdk,optional"`
	TargetSDK     int      `hcl:"target_sdk,optional"`
	VersionCode   int64    `hcl:"version_code,optional"`
	VersionName   string   `hcl:"version_name,optional"`
	NDKVersion    *string  `hcl:"ndk_version,optional"`
	Plugins       []string `hcl:"plugins,optional"`

	CompileOptions *hclCompileOptions  `hcl:"compile_options,block"`
	KotlinOptions  *hclKotlinOptions   `hcl:"kotlin_options,block"`
	Flutter        *hclFlutter         `hcl:"flutter,block"`
	BuildProfiles  []*hclBuildProfile  `hcl:"build_profile,block"`
	SigningConfigs []*hclSigningConfig `hcl:"signing_config,block"`
	Dependencies   []*hclDependency    `hcl:"dependency,block"`
}

type hclCompileOptions struct {
	SourceCompatibility          string `hcl:"source_compatibility,optional"`
	TargetCompatibility          string `hcl:"target_compatibility,optional"`
	CoreLibraryDesugaringEnabled bool   `hcl:"core_library_desugaring_enabled,optional"`
}

type hclKotlinOptions struct {
	JVMTarget string `hcl:"jvm_target,optional"`
}

type hclFlutter struct {
	Source string `hcl:"source,optional"`
}

type hclBuildProfile struct {
	Name                string `hcl:"name,label"`
	SigningConfig       string `hcl:"signing_config,optional"`
	ApplicationIDSuffix string `hcl:"application_id_suffix,optional"`
	VersionNameSuffix   string `hcl:"version_name_suffix,optional"`
	Debuggable          *bool  `hcl:"debuggable,optional"`
	MinifyEnabled       *bool  `hcl:"minify_enabled,optional"`
}

type hclSigningConfig struct {
	Name          string `hcl:"name,label"`
	StoreFile     string `hcl:"store_file,optional"`
	StorePassword string `hcl:"store_password,optional"`
	StoreType     string `hcl:"store_type,optional"`
	KeyAlias      string `hcl:"key_alias,optional"`
	KeyPassword   string `hcl:"key_password,optional"`
}

type hclDependency struct {
	Scope      string `hcl:"scope,label"`
	Coordinate string `hcl:"coordinate"`
}

// DecodeHCL decodes an HCL document. Expressions are evaluated with an
// "sdk" object mapping platform codenames to API levels.
func DecodeHCL(data []byte, filename string) (models.Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return models.Document{}, fmt.Errorf("failed to parse HCL document %s: %w", filename, diags)
	}

	var parsed hclDocument
	if diags := gohcl.DecodeBody(file.Body, sdkEvalContext(), &parsed); diags.HasErrors() {
		return models.Document{}, fmt.Errorf("failed to decode HCL document %s: %w", filename, diags)
	}

	return parsed.toDocument(filename)
}

func sdkEvalContext() *hcl.EvalContext {
	levels := make(map[string]cty.Value)
	for codename, lvl := range models.APILevels() {
		levels[codename] = cty.NumberIntVal(int64(lvl))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"sdk": cty.ObjectVal(levels),
		},
	}
}

func (h *hclDocument) toDocument(filename string) (models.Document, error) {
	doc := models.Document{
		Namespace:     h.Namespace,
		ApplicationID: h.ApplicationID,
		CompileSDK:    models.SDKLevel(h.CompileSDK),
		MinSDK:        models.SDKLevel(h.MinSDK),
		TargetSDK:     models.SDKLevel(h.TargetSDK),
		VersionCode:   h.VersionCode,
		VersionName:   h.VersionName,
		NDKVersion:    h.NDKVersion,
		Plugins:       h.Plugins,
	}

	if h.CompileOptions != nil {
		doc.CompileOptions = models.CompileOptions{
			SourceCompatibility:          h.CompileOptions.SourceCompatibility,
			TargetCompatibility:          h.CompileOptions.TargetCompatibility,
			CoreLibraryDesugaringEnabled: h.CompileOptions.CoreLibraryDesugaringEnabled,
		}
	}
	if h.KotlinOptions != nil {
		doc.KotlinOptions.JVMTarget = h.KotlinOptions.JVMTarget
	}
	if h.Flutter != nil {
		doc.Flutter.Source = h.Flutter.Source
	}

	if len(h.BuildProfiles) > 0 {
		doc.BuildProfiles = make(map[string]models.ProfileOverrides, len(h.BuildProfiles))
	}
	for _, p := range h.BuildProfiles {
		if _, dup := doc.BuildProfiles[p.Name]; dup {
			return models.Document{}, fmt.Errorf("duplicate build_profile %q in %s", p.Name, filename)
		}
		doc.BuildProfiles[p.Name] = models.ProfileOverrides{
			SigningConfig:       p.SigningConfig,
			ApplicationIDSuffix: p.ApplicationIDSuffix,
			VersionNameSuffix:   p.VersionNameSuffix,
			Debuggable:          p.Debuggable,
			MinifyEnabled:       p.MinifyEnabled,
		}
	}

	if len(h.SigningConfigs) > 0 {
		doc.SigningConfigs = make(map[string]models.SigningConfig, len(h.SigningConfigs))
	}
	for _, s := range h.SigningConfigs {
		if _, dup := doc.SigningConfigs[s.Name]; dup {
			return models.Document{}, fmt.Errorf("duplicate signing_config %q in %s", s.Name, filename)
		}
		doc.SigningConfigs[s.Name] = models.SigningConfig{
			StoreFile:     s.StoreFile,
			StorePassword: s.StorePassword,
			StoreType:     s.StoreType,
			KeyAlias:      s.KeyAlias,
			KeyPassword:   s.KeyPassword,
		}
	}

	for _, d := range h.Dependencies {
		doc.Dependencies = append(doc.Dependencies, models.Dependency{Coordinate: d.Coordinate, Scope: d.Scope})
	}

	return doc, nil
}
