package fingerprint

// Aggregate concatenates digests in the given order and hashes the result
// with engine. An empty slice hashes the empty byte sequence.
func Aggregate(engine Engine, digests []Digest) Digest {
	buf := make([]byte, 0, DigestSize*len(digests))
	for _, d := range digests {
		buf = append(buf, d[:]...)
	}
	return engine.Sum(buf)
}
