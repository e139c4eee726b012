// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/appcfg/internal/report"
)

// validate checks that the final merged [StructuredConfig] is usable before
// any document is read.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// package sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if !slices.Contains(Commands, cfg.Command) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownCommand, cfg.Command, Commands)
	}

	if cfg.Command == CommandVersion {
		return nil
	}

	switch {
	case cfg.Command == CommandQuery && len(cfg.Args) != 1:
		return ErrMissingQueryPath
	case cfg.Command != CommandQuery && len(cfg.Args) > 0:
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, cfg.Args)
	}

	if cfg.Document.Path == "" {
		return ErrMissingDocumentPath
	}

	if !slices.Contains(report.Formats, cfg.Output.Format) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrInvalidFormat, cfg.Output.Format, report.Formats)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level)
	}

	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, cfg.Watch.Debounce)
	}

	return nil
}
