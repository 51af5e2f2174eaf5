// Package config loads, normalizes, and validates Podmill configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GEMINI_API_KEY. The Config type centralizes every knob the CLI and pipeline
// need, from the prompt queue directories to the fixed speaker-to-voice
// mapping for the two hosts.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a validated voice mapping, and clear validation errors.
package config
