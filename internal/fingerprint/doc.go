// Package fingerprint computes deterministic, content-derived fingerprints for
// directory trees.
//
// Each regular file contributes one 32-byte digest of a sample of its bytes:
// files smaller than twice the window size are hashed in full, larger files
// are hashed over their first and last window bytes. The per-file digests are
// concatenated in traversal order and hashed once more with the same engine to
// produce the directory fingerprint.
//
// Failures local to one entry (an unreadable subtree, a file that vanished or
// shrank mid-run) are recorded and skipped; only a missing root aborts a run.
//
// Primary entry points:
//   - Compute: walks a root and returns its DirectoryFingerprint
//   - Sample / StrategyFor: the per-file sampling rule
//   - Aggregate: the final reduction over per-file digests
package fingerprint
