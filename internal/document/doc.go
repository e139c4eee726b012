// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package document reads build configuration documents into the
// format-agnostic [models.Document].
//
// Three formats are supported, chosen by file extension:
//   - .json: field names as in the Android DSL (compileSdk, buildProfiles);
//   - .hcl: snake_case attributes with labelled build_profile,
//     signing_config and dependency blocks; SDK levels may be written as
//     sdk.<CODENAME> (sdk.L, sdk["O-MR1"]);
//   - .toml: snake_case keys with build_profiles / signing_configs tables.
//
// Unknown keys are rejected in every format. After loading, [ApplyDefaults]
// fills omitted settings from shared defaults and [ApplyOverrides] applies
// command-line path=value overrides.
package document
