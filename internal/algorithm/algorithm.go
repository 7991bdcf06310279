// Package algorithm names the digest algorithms ffp supports. Configuration
// validates against this list and the fingerprint engines register under it.
package algorithm

import (
	"slices"
	"strings"
)

const (
	SHA256   = "sha256"
	SHA3_256 = "sha3-256"
	BLAKE3   = "blake3"

	// Default is used when no algorithm is configured.
	Default = SHA256
)

var names = []string{BLAKE3, SHA256, SHA3_256}

// Names returns the supported algorithm names in sorted order.
func Names() []string {
	return slices.Clone(names)
}

// Normalize lowercases and trims name. An empty name becomes Default.
func Normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default
	}
	return key
}

// Supported reports whether name, after Normalize, is a known algorithm.
func Supported(name string) bool {
	return slices.Contains(names, Normalize(name))
}
