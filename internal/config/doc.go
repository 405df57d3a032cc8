// Package config loads, normalizes, and validates phototitles configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads an optional .env.local, and honours
// PHOTOTITLES_* environment overrides. The Config type centralizes the
// library locations, the absent-title convention of each library, and the
// migration toggles so the CLI and the run orchestrator read them in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical convention names, and clear validation errors.
package config
