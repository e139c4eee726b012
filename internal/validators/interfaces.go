// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the validation rules of a build configuration
// document and the [ValidationError] taxonomy they report.
//
// Rules run in a fixed order and the first failing rule aborts validation:
//  1. namespace present
//  2. minSdk <= targetSdk <= compileSdk, all positive
//  3. build profiles known and their signing references declared
//  4. versionCode positive and within the platform ceiling
//  5. versionName present
//  6. dependency coordinates and scopes well-formed
//  7. core library desugaring flag consistent with dependencies
//  8. framework plugin applied after the Android and Kotlin plugins
//
// Callers may restrict validation to a subset of rules by passing Field*
// names to [Validator.Validate].
package validators

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

import "context"

// Validator validates an arbitrary input value, optionally restricted to the
// named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
