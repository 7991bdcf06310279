package config

import "ffp/internal/algorithm"

const (
	defaultWindowSize = 8192
	defaultAlgorithm  = algorithm.Default
	defaultSorted     = true
	defaultStorePath  = "~/.local/share/ffp/fingerprints.db"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// DefaultWindowSize is the number of head and tail bytes sampled when no
// window size is configured or the configured value cannot be used.
const DefaultWindowSize = defaultWindowSize

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			WindowSize: defaultWindowSize,
			Algorithm:  defaultAlgorithm,
			Sorted:     defaultSorted,
		},
		Store: Store{
			Enabled: true,
			Path:    defaultStorePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
