package preflight

import (
	"context"
	"path/filepath"

	"ffp/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// Roots are checked for read access when provided.
func RunAll(ctx context.Context, cfg *config.Config, roots ...string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.Store.Enabled {
		results = append(results, CheckDirectoryAccess("Store directory", filepath.Dir(cfg.Store.Path)))
		results = append(results, CheckStore(ctx, cfg.Store.Path))
	}

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	for _, root := range roots {
		results = append(results, CheckReadableTree("Scan root", root))
	}

	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
