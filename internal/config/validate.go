package config

import (
	"errors"
	"fmt"
	"strings"

	"ffp/internal/algorithm"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if c.Scan.WindowSize <= 0 {
		return fmt.Errorf("scan.window_size must be positive, got %d", c.Scan.WindowSize)
	}
	if !algorithm.Supported(c.Scan.Algorithm) {
		return fmt.Errorf("scan.algorithm must be one of %s, got %q", strings.Join(algorithm.Names(), ", "), c.Scan.Algorithm)
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Enabled && strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path must be set when store.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
