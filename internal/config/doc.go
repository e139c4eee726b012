// Package config provides loading, merging, and validation of appcfg's own
// settings: which document to read, how to render it and what to check.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON config file (-c / -config or APPCFG_CONFIG)
//  3. Environment variables (APPCFG_ prefix)
//  4. Command-line flags
//
// The main entry point is [GetStructuredConfig].
package config
