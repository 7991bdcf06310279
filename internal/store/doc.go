// Package store persists fingerprint run summaries in SQLite.
//
// Each recorded run keeps the root, aggregate digest, file and failure
// counts, and the parameters that produced the digest. A lock file beside the
// database serialises writers across processes so concurrent scans recording
// into the same database cannot interleave.
package store
