package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"ffp/internal/algorithm"
)

// DigestSize is the width in bytes of every digest produced by an Engine.
const DigestSize = 32

// Digest is a fixed-size cryptographic hash output.
type Digest [DigestSize]byte

// String renders the digest as lowercase hexadecimal.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements encoding.TextMarshaler so digests encode as hex in JSON.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDigest decodes a 64-character hexadecimal digest.
func ParseDigest(value string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return d, fmt.Errorf("parse digest: %w", err)
	}
	if len(raw) != DigestSize {
		return d, fmt.Errorf("parse digest: got %d bytes, want %d", len(raw), DigestSize)
	}
	copy(d[:], raw)
	return d, nil
}

// Engine computes digests. The same engine must be used for per-file samples
// and for the aggregate so both are the same primitive over different inputs.
type Engine interface {
	Name() string
	Sum(data []byte) Digest
}

type sumEngine struct {
	name string
	sum  func([]byte) [DigestSize]byte
}

func (e sumEngine) Name() string { return e.name }

func (e sumEngine) Sum(data []byte) Digest { return Digest(e.sum(data)) }

// DefaultAlgorithm names the engine used when none is configured.
const DefaultAlgorithm = algorithm.Default

var engines = map[string]Engine{
	algorithm.SHA256:   sumEngine{name: algorithm.SHA256, sum: sha256.Sum256},
	algorithm.SHA3_256: sumEngine{name: algorithm.SHA3_256, sum: sha3.Sum256},
	algorithm.BLAKE3:   sumEngine{name: algorithm.BLAKE3, sum: blake3.Sum256},
}

// EngineByName returns the registered engine for name (case-insensitive).
// An empty name selects DefaultAlgorithm.
func EngineByName(name string) (Engine, error) {
	engine, ok := engines[algorithm.Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownAlgorithm, name, strings.Join(Algorithms(), ", "))
	}
	return engine, nil
}

// Algorithms lists the supported engine names in sorted order.
func Algorithms() []string {
	return algorithm.Names()
}
