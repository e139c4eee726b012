package resolver

import (
	"fmt"
	"reflect"

	"dario.cat/mergo"

	"github.com/MKhiriev/appcfg/models"
)

// MergeProfile applies overrides onto a copy of base. Non-zero override
// values win, including explicit false booleans; base is never modified,
// and merging the same overrides twice gives the same result as merging
// once.
func MergeProfile(base models.AppConfig, overrides models.ProfileOverrides) (models.AppConfig, error) {
	current := base.Overrides()
	err := mergo.Merge(&current, overrides.Clone(),
		mergo.WithOverride,
		mergo.WithTransformers(boolPtrTransformer{}),
	)
	if err != nil {
		return models.AppConfig{}, fmt.Errorf("error merging profile overrides: %w", err)
	}

	return base.WithOverrides(current), nil
}

// boolPtrTransformer makes a set *bool in the source replace the
// destination, even when it points at false.
type boolPtrTransformer struct{}

var boolPtrType = reflect.TypeOf((*bool)(nil))

func (boolPtrTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != boolPtrType {
		return nil
	}

	return func(dst, src reflect.Value) error {
		if !dst.CanSet() || src.IsNil() {
			return nil
		}
		v := src.Elem().Bool()
		dst.Set(reflect.ValueOf(&v))
		return nil
	}
}
