// Package services defines shared utilities consumed by the CLI commands and
// the persistence/export collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp clip IDs, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (validation vs not-found vs conflict) uniform across
//     the store, the scenario codec, and the CLI.
//
// Use these helpers when wiring new commands so operational behaviour stays
// uniform across the tool.
package services
