// Package config loads, normalizes, and validates astrocopy configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, applies command-line overrides, and parses the ignore policy
// into an explicit set of capabilities. Invalid combinations are rejected
// here, before any filesystem work starts, with errors tagged
// stage.ErrConfiguration.
//
// Always obtain settings through this package so the pipeline stages receive
// absolute paths, canonical strategy names, and a validated ignore policy.
package config
