// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package report renders resolution results for people and for tools.
//
// Every format renders the redacted form of a [models.ResolvedConfig]:
// signing passwords are replaced by [models.RedactedSecret] before anything
// is written.
package report

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/appcfg/internal/keystore"
	"github.com/MKhiriev/appcfg/models"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON}

var (
	// ErrUnknownProfile is returned when a single variant is requested by a
	// name the resolved configuration does not have.
	ErrUnknownProfile = errors.New("no such build profile")

	// ErrPathNotFound is returned by [Query] for a path that matches nothing.
	ErrPathNotFound = errors.New("path not found")

	// ErrUnknownFormat is returned by [Render] for an unsupported format.
	ErrUnknownFormat = errors.New("unknown output format")
)

// Result is what a successful run reports.
type Result struct {
	Config models.ResolvedConfig

	// Profile, when set, restricts the output to that variant.
	Profile string

	// Keystores holds the outcome of keystore verification, if it ran.
	Keystores []keystore.Report

	InvocationID string
}

// redacted returns a copy of r that is safe to render.
func (r Result) redacted() Result {
	out := r
	out.Config = r.Config.Redacted()
	out.Keystores = slices.Clone(r.Keystores)
	return out
}

// variant returns the AppConfig of the requested profile.
func (r Result) variant() (models.AppConfig, error) {
	v, ok := r.Config.Variants[r.Profile]
	if !ok {
		return models.AppConfig{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownProfile, r.Profile, r.Config.ProfileOrder)
	}
	return v, nil
}
