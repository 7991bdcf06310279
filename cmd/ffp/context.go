package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ffp/internal/config"
	"ffp/internal/logging"
	"ffp/internal/store"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// loggerFor builds the process logger on first use. Log records go to the
// command's stderr so they never mix with fingerprint output.
func (c *commandContext) loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logCfg := *cfg
		if c.verbose() {
			logCfg.Logging.Level = "debug"
		}
		logger, err := logging.NewFromConfig(&logCfg, cmd.ErrOrStderr())
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		for _, warning := range cfg.Warnings {
			logging.WarnWithContext(logger, "configuration adjusted", "config_warning",
				logging.String("detail", warning),
				logging.String(logging.FieldErrorHint, "fix the value in "+c.configPath+" or the environment"),
				logging.String(logging.FieldImpact, "a default value is used instead"),
			)
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openStore opens the fingerprint store. It fails when the store is disabled.
func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Store.Enabled {
		return nil, errors.New("fingerprint store is disabled (set store.enabled = true)")
	}
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open fingerprint store: %w", err)
	}
	return s, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// storeKey turns a root argument into the absolute, cleaned path runs are
// recorded under.
func storeKey(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	return abs, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
