package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"ffp/internal/config"
	"ffp/internal/filter"
	"ffp/internal/fingerprint"
	"ffp/internal/logging"
	"ffp/internal/store"
)

// scanFlags holds the fingerprint parameters shared by scan and check.
type scanFlags struct {
	size      int64
	algorithm string
	unsorted  bool
	strict    bool
	filter    string
}

func (f *scanFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int64VarP(&f.size, "size", "s", config.DefaultWindowSize, "Bytes sampled from the head and tail of each file")
	flags.StringVarP(&f.algorithm, "algorithm", "a", "", "Digest algorithm (see `ffp algorithms`)")
	flags.BoolVar(&f.unsorted, "unsorted", false, "Use raw directory order instead of sorted relative paths")
	flags.BoolVar(&f.strict, "strict", false, "Exit with status 2 when any entry could not be fingerprinted")
	flags.StringVar(&f.filter, "filter", "", "Expression selecting which files take part, e.g. 'ext != \".tmp\"'")
}

// scanSettings are the effective parameters after merging config and flags.
type scanSettings struct {
	window    int
	algorithm string
	sorted    bool
	strict    bool
	filter    string
}

func (s scanSettings) params() store.Params {
	return store.Params{
		WindowSize: s.window,
		Algorithm:  s.algorithm,
		Sorted:     s.sorted,
		Filter:     s.filter,
	}
}

func resolveScanSettings(cmd *cobra.Command, cfg *config.Config, f *scanFlags, logger *slog.Logger) (scanSettings, error) {
	settings := scanSettings{
		window:    cfg.WindowSizeInt(),
		algorithm: cfg.Scan.Algorithm,
		sorted:    cfg.Scan.Sorted,
		strict:    cfg.Scan.Strict,
		filter:    cfg.Scan.Filter,
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		window, ok := config.CoerceWindowSize(f.size)
		if !ok {
			logging.WarnWithContext(logger, "window size out of range", "config_warning",
				logging.Int64("requested", f.size),
				logging.Int("window_size", window),
				logging.String(logging.FieldErrorHint, "pass a smaller --size"),
				logging.String(logging.FieldImpact, "the default window size is used"),
			)
		}
		settings.window = window
	}
	if settings.window <= 0 {
		return scanSettings{}, fmt.Errorf("%w: %d", fingerprint.ErrInvalidWindow, settings.window)
	}
	if flags.Changed("algorithm") {
		settings.algorithm = strings.ToLower(strings.TrimSpace(f.algorithm))
	}
	if _, err := fingerprint.EngineByName(settings.algorithm); err != nil {
		return scanSettings{}, err
	}
	if f.unsorted {
		settings.sorted = false
	}
	if f.strict {
		settings.strict = true
	}
	if flags.Changed("filter") {
		settings.filter = strings.TrimSpace(f.filter)
	}
	return settings, nil
}

// computeFingerprint runs the fingerprint for root with the effective settings.
func computeFingerprint(cmd *cobra.Command, logger *slog.Logger, root string, settings scanSettings, keepFiles bool) (*fingerprint.DirectoryFingerprint, error) {
	compiled, err := filter.CompileOptional(settings.filter)
	if err != nil {
		return nil, err
	}
	var entryFilter fingerprint.EntryFilter
	if compiled != nil {
		entryFilter = compiled
	}

	return fingerprint.Compute(cmd.Context(), root, fingerprint.Options{
		WindowSize: settings.window,
		Algorithm:  settings.algorithm,
		Sorted:     settings.sorted,
		Filter:     entryFilter,
		KeepFiles:  keepFiles,
		Logger:     logger,
	})
}

func runFromFingerprint(key string, fp *fingerprint.DirectoryFingerprint, settings scanSettings) store.Run {
	return store.Run{
		ID:        fp.RunID,
		Root:      key,
		Digest:    fp.Digest.String(),
		FileCount: fp.FileCount,
		Failures:  len(fp.Failures),
		Filtered:  fp.Filtered,
		Params:    settings.params(),
		Duration:  fp.Duration,
		CreatedAt: fp.StartedAt,
	}
}
