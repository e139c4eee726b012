package document

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/MKhiriev/appcfg/models"
)

// ApplyOverrides returns a copy of doc with each "path=value" override set.
//
// Paths use the JSON field names of the document with dots between levels
// (buildProfiles.release.signingConfig, versionCode). A value that is valid
// JSON is set as-is (34, true, "1"); anything else is set as a string.
// String fields always take the value as text, so versionName=2.0 and
// ndkVersion=27 need no quoting.
// Overrides are applied in order, so a later override of the same path wins.
func ApplyOverrides(doc models.Document, overrides []string) (models.Document, error) {
	if len(overrides) == 0 {
		return doc.Clone(), nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return models.Document{}, fmt.Errorf("error encoding document for overrides: %w", err)
	}

	for _, o := range overrides {
		path, value, ok := strings.Cut(o, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return models.Document{}, fmt.Errorf("%w %q: want path=value", ErrInvalidOverride, o)
		}

		literal := json.Valid([]byte(value))
		if literal && !strings.HasPrefix(value, `"`) && isStringField(raw, path) {
			literal = false
		}

		if literal {
			raw, err = sjson.SetRawBytes(raw, path, []byte(value))
		} else {
			raw, err = sjson.SetBytes(raw, path, value)
		}
		if err != nil {
			return models.Document{}, fmt.Errorf("%w %q: %w", ErrInvalidOverride, o, err)
		}
	}

	out, err := DecodeJSON(raw, "overrides")
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	return out, nil
}

var documentType = reflect.TypeFor[models.Document]()

// isStringField reports whether path names a string in the document, either
// by its current value or, for absent fields, by the document's Go type.
func isStringField(raw []byte, path string) bool {
	if gjson.GetBytes(raw, path).Type == gjson.String {
		return true
	}

	t := documentType
	for _, seg := range strings.Split(path, ".") {
		t = indirect(t)
		switch t.Kind() {
		case reflect.Struct:
			f, ok := jsonField(t, seg)
			if !ok {
				return false
			}
			t = f.Type
		case reflect.Map, reflect.Slice:
			t = t.Elem()
		default:
			return false
		}
	}

	return indirect(t).Kind() == reflect.String
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// jsonField finds the field of struct type t encoded under name.
func jsonField(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := range t.NumField() {
		f := t.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
