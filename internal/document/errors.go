package document

import "errors"

var (
	// ErrUnsupportedFormat is returned for a document whose extension has no
	// registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrUnknownKeys is returned when a document contains keys that do not
	// map to any field.
	ErrUnknownKeys = errors.New("document contains unknown keys")

	// ErrInvalidOverride is returned for a -set value that is not of the
	// form path=value or that cannot be applied.
	ErrInvalidOverride = errors.New("invalid override")
)
