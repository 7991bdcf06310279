// Package main hosts the ffp CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the structured
// logger, and hands directory trees to internal/fingerprint. Recorded runs go
// through internal/store so later invocations can check a tree against its
// last known fingerprint.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through dedicated commands or flags here.
package main
