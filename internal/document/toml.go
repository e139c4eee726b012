package document

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/MKhiriev/appcfg/models"
)

// DecodeTOML decodes a TOML document. Keys that do not map to a field are
// rejected.
func DecodeTOML(data []byte, filename string) (models.Document, error) {
	var doc models.Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return models.Document{}, fmt.Errorf("error decoding TOML document %s: %w", filename, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return models.Document{}, fmt.Errorf("%w in %s: %s", ErrUnknownKeys, filename, strings.Join(keys, ", "))
	}

	return doc, nil
}
