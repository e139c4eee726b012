package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/appcfg/models"
)

// DecodeJSON decodes a JSON document. Unknown fields are rejected.
func DecodeJSON(data []byte, filename string) (models.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc models.Document
	if err := dec.Decode(&doc); err != nil {
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			return models.Document{}, fmt.Errorf("%w in %s: %w", ErrUnknownKeys, filename, err)
		}
		return models.Document{}, fmt.Errorf("error decoding JSON document %s: %w", filename, err)
	}

	return doc, nil
}
