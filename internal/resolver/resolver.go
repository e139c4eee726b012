// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resolver turns a validated build configuration document into an
// immutable [models.ResolvedConfig].
//
// A [Resolver] is configured explicitly: the signing configurations that
// live outside the document, the allowed build profile names and the
// default NDK version are passed as options instead of being read from
// process-wide state. Resolution is a pure function of the document and
// those options.
package resolver

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/appcfg/internal/logger"
	"github.com/MKhiriev/appcfg/internal/validators"
	"github.com/MKhiriev/appcfg/models"
)

// Resolver validates documents and produces resolved configurations.
type Resolver struct {
	validator      validators.Validator
	signingConfigs map[string]models.SigningConfig
	profiles       []string
	defaultNDK     string
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithSigningConfigs injects signing configurations declared outside the
// document. Document entries win on name clashes.
func WithSigningConfigs(configs map[string]models.SigningConfig) Option {
	return func(r *Resolver) {
		r.signingConfigs = maps.Clone(configs)
	}
}

// WithProfiles replaces the allowed build profile names. The order given is
// the resolution and reporting order.
func WithProfiles(names ...string) Option {
	return func(r *Resolver) {
		r.profiles = slices.Clone(names)
	}
}

// WithDefaultNDKVersion sets the NDK version used when a document omits
// ndkVersion. Empty leaves the field absent.
func WithDefaultNDKVersion(version string) Option {
	return func(r *Resolver) {
		r.defaultNDK = version
	}
}

// WithValidator replaces the document validator.
func WithValidator(v validators.Validator) Option {
	return func(r *Resolver) {
		r.validator = v
	}
}

// New builds a Resolver. Without options it allows [models.DefaultProfiles],
// has no external signing configurations and no default NDK version.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		profiles: slices.Clone(models.DefaultProfiles),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.validator == nil {
		r.validator = validators.NewDocumentValidator(r.profiles...)
	}

	return r
}

// Resolve validates doc and returns the resolved configuration. The first
// failing validation rule is returned unchanged, so callers can match it
// with errors.Is / errors.As against the validators package.
//
// doc is never modified.
func (r *Resolver) Resolve(ctx context.Context, doc models.Document) (models.ResolvedConfig, error) {
	log := logger.FromContext(ctx)

	combined := doc.Clone()
	combined.SigningConfigs = r.combinedSigningConfigs(doc.SigningConfigs)

	if err := r.validator.Validate(ctx, combined); err != nil {
		log.Debug().Err(err).Str("namespace", doc.Namespace).Msg("document rejected")
		return models.ResolvedConfig{}, err
	}

	base := r.baseConfig(combined)

	order := models.OrderedProfileNames(combined.BuildProfiles, r.profiles)
	resolved := models.ResolvedConfig{
		App:            base,
		Profiles:       make(map[string]models.BuildProfile, len(order)),
		Variants:       make(map[string]models.AppConfig, len(order)),
		SigningConfigs: make(map[string]models.SigningConfig, len(combined.SigningConfigs)),
		ProfileOrder:   order,
	}

	for name, sc := range combined.SigningConfigs {
		sc.Name = name
		resolved.SigningConfigs[name] = sc
	}

	for _, name := range order {
		overrides := combined.BuildProfiles[name].Clone()
		variant, err := MergeProfile(base, overrides)
		if err != nil {
			return models.ResolvedConfig{}, fmt.Errorf("error merging build profile %q: %w", name, err)
		}

		resolved.Profiles[name] = models.BuildProfile{Name: name, ProfileOverrides: overrides}
		resolved.Variants[name] = variant
	}

	log.Debug().
		Str("namespace", base.Namespace).
		Strs("profiles", order).
		Msg("document resolved")

	return resolved, nil
}

func (r *Resolver) combinedSigningConfigs(fromDoc map[string]models.SigningConfig) map[string]models.SigningConfig {
	out := make(map[string]models.SigningConfig, len(r.signingConfigs)+len(fromDoc))
	maps.Copy(out, r.signingConfigs)
	maps.Copy(out, fromDoc)
	return out
}

func (r *Resolver) baseConfig(doc models.Document) models.AppConfig {
	ndk := models.None[string]()
	switch {
	case doc.NDKVersion != nil:
		ndk = models.Some(*doc.NDKVersion)
	case r.defaultNDK != "":
		ndk = models.Some(r.defaultNDK)
	}

	appID := doc.ApplicationID
	if appID == "" {
		appID = doc.Namespace
	}

	return models.AppConfig{
		Namespace:       doc.Namespace,
		ApplicationID:   appID,
		CompileSDK:      int(doc.CompileSDK),
		MinSDK:          int(doc.MinSDK),
		TargetSDK:       int(doc.TargetSDK),
		VersionCode:     doc.VersionCode,
		VersionName:     doc.VersionName,
		NDKVersion:      ndk,
		CompileOptions:  doc.CompileOptions,
		JVMTarget:       doc.KotlinOptions.JVMTarget,
		FrameworkSource: doc.Flutter.Source,
		Plugins:         slices.Clone(doc.Plugins),
		Dependencies:    slices.Clone(doc.Dependencies),
	}
}
