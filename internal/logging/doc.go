// Package logging constructs the slog loggers used across the CLI and the
// project store.
//
// Loggers are built from Options (level, format, output paths) or straight
// from application config. The console format is a terse single-line text
// handler for interactive use; the json format emits machine-readable events
// with RFC 3339 UTC timestamps. File outputs are created on demand with
// their parent directories.
package logging
