package document

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/MKhiriev/appcfg/models"
)

// Defaults returns the shared defaults every document is merged against:
// Java 8 language level, and release / debug profiles that differ only in
// being debuggable.
func Defaults() models.Document {
	return models.Document{
		CompileOptions: models.CompileOptions{
			SourceCompatibility: "1.8",
			TargetCompatibility: "1.8",
		},
		KotlinOptions: models.KotlinOptions{JVMTarget: "1.8"},
		BuildProfiles: map[string]models.ProfileOverrides{
			models.ProfileRelease: {Debuggable: models.Bool(false), MinifyEnabled: models.Bool(false)},
			models.ProfileDebug:   {Debuggable: models.Bool(true), MinifyEnabled: models.Bool(false)},
		},
	}
}

// ApplyDefaults returns a copy of doc whose zero fields are filled from
// defaults. Values present in doc always win. Profiles are merged one by
// one, so a document profile that sets only signingConfig still inherits
// the default flags of that profile. Pointers are compared, not their
// targets, so an explicit false in doc is kept.
func ApplyDefaults(doc, defaults models.Document) (models.Document, error) {
	out := doc.Clone()
	defaults = defaults.Clone()

	profiles := defaults.BuildProfiles
	defaults.BuildProfiles = nil

	if err := mergo.Merge(&out, defaults, mergo.WithoutDereference); err != nil {
		return models.Document{}, fmt.Errorf("error merging document defaults: %w", err)
	}

	if out.BuildProfiles == nil && len(profiles) > 0 {
		out.BuildProfiles = make(map[string]models.ProfileOverrides, len(profiles))
	}
	for name, def := range profiles {
		p := out.BuildProfiles[name]
		if err := mergo.Merge(&p, def, mergo.WithoutDereference); err != nil {
			return models.Document{}, fmt.Errorf("error merging defaults of build profile %q: %w", name, err)
		}
		out.BuildProfiles[name] = p
	}

	return out, nil
}
