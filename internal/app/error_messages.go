// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

const (
	// MsgDocumentValid is printed by the validate command when the document
	// resolves without errors.
	MsgDocumentValid = "document is valid"

	// MsgDocumentRejected is logged when a validation rule or a keystore
	// check fails.
	MsgDocumentRejected = "document rejected"

	// MsgLoadFailed is logged when the document cannot be read, decoded or
	// adjusted by overrides.
	MsgLoadFailed = "failed to load document"

	// MsgSigningConfigsFailed is logged when the external signing
	// configuration file cannot be read.
	MsgSigningConfigsFailed = "failed to load signing configurations"

	// MsgOutputFailed is logged when rendering the result fails.
	MsgOutputFailed = "failed to write output"

	// MsgWatching is logged when the watch command starts.
	MsgWatching = "watching document for changes"

	// MsgWatchFailed is logged when the file watcher stops with an error.
	MsgWatchFailed = "file watcher failed"
)
