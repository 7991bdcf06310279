// Package config loads, normalizes, and validates ffp configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FFP_WINDOW_SIZE. The Config type centralizes every knob the CLI needs so the
// scanner, the fingerprint store, and the logger are configured in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a coerced window size, and clear validation errors.
package config
