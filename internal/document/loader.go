package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MKhiriev/appcfg/internal/logger"
	"github.com/MKhiriev/appcfg/models"
)

// Decoder turns raw document bytes into a Document. filename is only used
// in error messages.
type Decoder func(data []byte, filename string) (models.Document, error)

// FileLoader implements [Loader] for files on disk, choosing a [Decoder]
// by file extension.
type FileLoader struct {
	decoders map[string]Decoder
}

// NewFileLoader returns a loader for .json, .hcl and .toml documents.
func NewFileLoader() *FileLoader {
	return &FileLoader{
		decoders: map[string]Decoder{
			".json": DecodeJSON,
			".hcl":  DecodeHCL,
			".toml": DecodeTOML,
		},
	}
}

// Extensions returns the supported file extensions, sorted.
func (l *FileLoader) Extensions() []string {
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load reads and decodes the document at path.
func (l *FileLoader) Load(ctx context.Context, path string) (models.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := l.decoders[ext]
	if !ok {
		return models.Document{}, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(l.Extensions(), ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("error reading document: %w", err)
	}

	doc, err := decode(data, path)
	if err != nil {
		return models.Document{}, err
	}

	logger.FromContext(ctx).Debug().
		Str("path", path).
		Str("format", strings.TrimPrefix(ext, ".")).
		Msg("document loaded")

	return doc, nil
}
