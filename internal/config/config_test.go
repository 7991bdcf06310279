package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ffp/internal/algorithm"
	"ffp/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "ffp", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Scan.WindowSize != config.DefaultWindowSize {
		t.Fatalf("unexpected window size: %d", cfg.Scan.WindowSize)
	}
	if cfg.Scan.Algorithm != "sha256" {
		t.Fatalf("unexpected algorithm: %q", cfg.Scan.Algorithm)
	}
	if !cfg.Scan.Sorted {
		t.Fatal("expected sorted traversal by default")
	}
	if cfg.Scan.Strict {
		t.Fatal("expected strict mode disabled by default")
	}
	wantStore := filepath.Join(tempHome, ".local", "share", "ffp", "fingerprints.db")
	if cfg.Store.Path != wantStore {
		t.Fatalf("unexpected store path: got %q want %q", cfg.Store.Path, wantStore)
	}
	if len(cfg.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", cfg.Warnings)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(wantStore)); err != nil || !info.IsDir() {
		t.Fatalf("expected store directory to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "ffp.toml")

	type payload struct {
		Scan struct {
			WindowSize int64  `toml:"window_size"`
			Algorithm  string `toml:"algorithm"`
			Sorted     bool   `toml:"sorted"`
			Filter     string `toml:"filter"`
		} `toml:"scan"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Scan.WindowSize = 4096
	custom.Scan.Algorithm = " BLAKE3 "
	custom.Scan.Filter = `  ext != ".tmp"  `
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Scan.WindowSize != 4096 {
		t.Fatalf("expected window size 4096, got %d", cfg.Scan.WindowSize)
	}
	if cfg.Scan.Algorithm != "blake3" {
		t.Fatalf("expected normalized algorithm, got %q", cfg.Scan.Algorithm)
	}
	if cfg.Scan.Sorted {
		t.Fatal("expected sorted=false from file")
	}
	if cfg.Scan.Filter != `ext != ".tmp"` {
		t.Fatalf("expected trimmed filter, got %q", cfg.Scan.Filter)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "ffp.toml")
	if err := os.WriteFile(configPath, []byte("[scan]\nwindow_size = 4096\nalgorithm = \"sha256\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FFP_WINDOW_SIZE", "512")
	t.Setenv("FFP_ALGORITHM", "sha3-256")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Scan.WindowSize != 512 {
		t.Errorf("expected window size from env, got %d", cfg.Scan.WindowSize)
	}
	if cfg.Scan.Algorithm != "sha3-256" {
		t.Errorf("expected algorithm from env, got %q", cfg.Scan.Algorithm)
	}
}

func TestInvalidWindowSizeEnvKeepsValueWithWarning(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FFP_WINDOW_SIZE", "lots")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Scan.WindowSize != config.DefaultWindowSize {
		t.Fatalf("expected default window size, got %d", cfg.Scan.WindowSize)
	}
	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "FFP_WINDOW_SIZE") {
		t.Fatalf("expected FFP_WINDOW_SIZE warning, got %v", cfg.Warnings)
	}
}

func TestCoerceWindowSize(t *testing.T) {
	got, ok := config.CoerceWindowSize(4096)
	if !ok || got != 4096 {
		t.Fatalf("CoerceWindowSize(4096) = %d, %v", got, ok)
	}
	got, ok = config.CoerceWindowSize(-1)
	if !ok || got != -1 {
		t.Fatalf("expected negative values to pass through for validation, got %d, %v", got, ok)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Scan.WindowSize != config.DefaultWindowSize {
		t.Fatalf("sample window size drifted from default: %d", cfg.Scan.WindowSize)
	}
	if cfg.Scan.Algorithm != config.Default().Scan.Algorithm {
		t.Fatalf("sample algorithm drifted from default: %q", cfg.Scan.Algorithm)
	}
	if cfg.Scan.Record != config.Default().Scan.Record {
		t.Fatalf("sample scan.record drifted from default: %t", cfg.Scan.Record)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero window", func(c *config.Config) { c.Scan.WindowSize = 0 }, "scan.window_size"},
		{"negative window", func(c *config.Config) { c.Scan.WindowSize = -8 }, "scan.window_size"},
		{"unknown algorithm", func(c *config.Config) { c.Scan.Algorithm = "md5" }, "scan.algorithm"},
		{"store without path", func(c *config.Config) { c.Store.Path = " " }, "store.path"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateAcceptsEveryAlgorithmName(t *testing.T) {
	for _, name := range algorithm.Names() {
		cfg := config.Default()
		cfg.Scan.Algorithm = name
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%s): %v", name, err)
		}
	}
}
