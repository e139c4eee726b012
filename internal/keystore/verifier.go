// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keystore

import (
	"context"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/crypto/pkcs12"

	"github.com/MKhiriev/appcfg/internal/logger"
	"github.com/MKhiriev/appcfg/internal/utils"
	"github.com/MKhiriev/appcfg/models"
)

// StoreTypePKCS12 is the storeType value that selects PKCS#12 parsing.
const StoreTypePKCS12 = "pkcs12"

// Report describes a store that passed verification.
type Report struct {
	Name string `json:"name"`
	Path string `json:"path"`
	// Inspected is false for store formats whose content is not parsed
	// (JKS); only the file's existence was checked.
	Inspected bool   `json:"inspected"`
	Alias     string `json:"alias,omitempty"`
	// Fingerprint is the SHA-256 fingerprint of the certificate stored
	// under Alias (or the first certificate when no alias is configured).
	Fingerprint string `json:"fingerprint,omitempty"`
}

// fileVerifier is the private implementation of [Verifier].
type fileVerifier struct {
	// baseDir anchors relative store paths, normally the directory of the
	// document that declared them.
	baseDir string
}

// NewVerifier constructs a [Verifier] that resolves relative store paths
// against baseDir.
func NewVerifier(baseDir string) Verifier {
	return &fileVerifier{baseDir: baseDir}
}

// Verify implements [Verifier]. Configurations without a store file are
// skipped.
func (v *fileVerifier) Verify(ctx context.Context, configs map[string]models.SigningConfig) ([]Report, error) {
	log := logger.FromContext(ctx)

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	slices.Sort(names)

	reports := make([]Report, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sc := configs[name]
		if sc.StoreFile == "" {
			log.Debug().Str("signing_config", name).Msg("no store file, skipped")
			continue
		}

		report, err := v.verifyOne(name, sc)
		if err != nil {
			return nil, err
		}

		log.Debug().
			Str("signing_config", name).
			Str("path", report.Path).
			Bool("inspected", report.Inspected).
			Msg("keystore verified")
		reports = append(reports, report)
	}

	return reports, nil
}

func (v *fileVerifier) verifyOne(name string, sc models.SigningConfig) (Report, error) {
	path := sc.StoreFile
	if !filepath.IsAbs(path) && v.baseDir != "" {
		path = filepath.Join(v.baseDir, path)
	}
	report := Report{Name: name, Path: path, Alias: sc.KeyAlias}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrStoreNotFound
		}
		return Report{}, &KeystoreError{Name: name, Path: path, Err: err}
	}

	if !isPKCS12(sc) {
		return report, nil
	}
	report.Inspected = true

	blocks, err := pkcs12.ToPEM(data, sc.StorePassword)
	if err != nil {
		return Report{}, &KeystoreError{Name: name, Path: path, Err: fmt.Errorf("%w: %w", ErrStoreUnreadable, err)}
	}

	cert, found := findAlias(blocks, sc.KeyAlias)
	if !found {
		return Report{}, &KeystoreError{Name: name, Path: path, Err: fmt.Errorf("%w: %q", ErrAliasNotFound, sc.KeyAlias)}
	}
	if cert != nil {
		report.Fingerprint = utils.Fingerprint(cert.Bytes)
	}

	return report, nil
}

// isPKCS12 reports whether the store should be parsed as PKCS#12, either by
// its declared type or by its file extension.
func isPKCS12(sc models.SigningConfig) bool {
	if sc.StoreType != "" {
		return strings.EqualFold(sc.StoreType, StoreTypePKCS12)
	}
	switch strings.ToLower(filepath.Ext(sc.StoreFile)) {
	case ".p12", ".pfx":
		return true
	default:
		return false
	}
}

// findAlias looks for alias among the friendlyName headers of blocks and
// returns the certificate stored under it, if any. An empty alias matches
// the first certificate.
func findAlias(blocks []*pem.Block, alias string) (*pem.Block, bool) {
	found := alias == ""
	for _, b := range blocks {
		if alias != "" && b.Headers["friendlyName"] != alias {
			continue
		}
		found = true
		if b.Type == "CERTIFICATE" {
			return b, true
		}
	}
	return nil, found
}
