// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keystore checks that the signing configurations a resolved
// configuration refers to can actually sign: the store file exists and, for
// PKCS#12 stores, opens with the configured password and holds the
// configured key alias.
//
// The checks never modify a store and never print a password.
package keystore

//go:generate mockgen -source=interfaces.go -destination=../mock/keystore_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/appcfg/models"
)

// Verifier opens signing stores.
type Verifier interface {
	// Verify checks every configuration in configs, in name order, and
	// returns the first failure as a *[KeystoreError]. On success it
	// returns one [Report] per configuration that names a store file.
	Verify(ctx context.Context, configs map[string]models.SigningConfig) ([]Report, error)
}
