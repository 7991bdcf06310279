package testsupport

import (
	"path/filepath"
	"testing"

	"ffp/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose store and log directory live in a unique
// temp directory per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(base, "data", "fingerprints.db")
	cfg.Logging.Dir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithWindowSize overrides the scan window size.
func WithWindowSize(size int64) ConfigOption {
	return func(c *config.Config) {
		c.Scan.WindowSize = size
	}
}

// WithStoreDisabled turns off the fingerprint store.
func WithStoreDisabled() ConfigOption {
	return func(c *config.Config) {
		c.Store.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Store.Path))
}
