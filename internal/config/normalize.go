package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeScan()
	if err := c.normalizeStore(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeScan() {
	if value, ok := os.LookupEnv("FFP_WINDOW_SIZE"); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			c.warnf("FFP_WINDOW_SIZE %q is not an integer; keeping %d", value, c.Scan.WindowSize)
		} else {
			c.Scan.WindowSize = parsed
		}
	}
	if value, ok := os.LookupEnv("FFP_ALGORITHM"); ok && strings.TrimSpace(value) != "" {
		c.Scan.Algorithm = value
	}

	if size, ok := CoerceWindowSize(c.Scan.WindowSize); !ok {
		c.warnf("scan.window_size %d does not fit the platform int; using default %d", c.Scan.WindowSize, defaultWindowSize)
		c.Scan.WindowSize = int64(size)
	}

	c.Scan.Algorithm = strings.ToLower(strings.TrimSpace(c.Scan.Algorithm))
	if c.Scan.Algorithm == "" {
		c.Scan.Algorithm = defaultAlgorithm
	}
	c.Scan.Filter = strings.TrimSpace(c.Scan.Filter)
}

func (c *Config) normalizeStore() error {
	var err error
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	if c.Store.Path, err = expandPath(c.Store.Path); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// CoerceWindowSize converts a requested window size to the platform int.
// Values that do not fit return the default window size and false.
// Non-positive values are passed through unchanged for validation to reject.
func CoerceWindowSize(requested int64) (int, bool) {
	if requested > math.MaxInt || requested < math.MinInt {
		return defaultWindowSize, false
	}
	return int(requested), true
}
