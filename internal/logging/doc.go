// Package logging assembles structured slog loggers and formatting helpers used
// across ffp.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes the standard field names (component, run_id, path,
// event_type, error_hint, impact) so scanner and CLI code emit records with the
// same shape. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
package logging
