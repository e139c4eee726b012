package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration cannot be used.
var (
	// ErrUnknownCommand indicates a positional command appcfg does not have.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingQueryPath indicates a query command without exactly one path.
	ErrMissingQueryPath = errors.New("query needs exactly one path argument")
	// ErrUnexpectedArgs indicates positional arguments after a command that
	// takes none.
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	// ErrMissingDocumentPath indicates that neither -f nor APPCFG_FILE named
	// a document.
	ErrMissingDocumentPath = errors.New("no document given (use -f or APPCFG_FILE)")
	// ErrInvalidFormat indicates an output format other than text or json.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrInvalidLogLevel indicates a log level zerolog cannot parse.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidDebounce indicates a negative watch debounce.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)
