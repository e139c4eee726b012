package document

//go:generate mockgen -source=interfaces.go -destination=../mock/loader_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/appcfg/models"
)

// Loader reads a build configuration document from a path.
type Loader interface {
	Load(ctx context.Context, path string) (models.Document, error)
}
