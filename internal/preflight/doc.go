// Package preflight provides readiness checks for the filesystem paths ffp
// depends on.
//
// The CLI "ffp doctor" command runs RunAll to confirm that the fingerprint
// store and log directory are usable and, when given a directory, that the
// tree can be read before a long scan starts.
//
// Each check is gated by its config toggle -- a disabled store is skipped.
package preflight
