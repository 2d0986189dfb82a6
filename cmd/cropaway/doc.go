// Package main hosts the cropaway CLI entrypoint and command graph.
//
// The Cobra-based command tree manages clips and their keyframe timelines in
// the project database, samples interpolated crop states for arbitrary
// timestamps, renders export mask sequences, and exchanges timelines as YAML
// scenario documents. It centralizes configuration resolution, store setup,
// and structured logging so subcommands can focus on user experience instead
// of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
