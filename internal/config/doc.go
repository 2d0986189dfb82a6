// Package config loads, normalizes, and validates cropaway configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and the export pipeline need: project and log directories,
// keyframe collision tolerance, default interpolation curves, and export
// worker settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical curve names, and clear validation errors.
package config
