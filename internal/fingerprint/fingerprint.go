package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"ffp/internal/logging"
)

// progressMinFiles is the smallest tree that emits progress records.
const progressMinFiles = 100

// Options configures one fingerprint run.
type Options struct {
	WindowSize int
	// Algorithm names a registered Engine; empty selects DefaultAlgorithm.
	Algorithm string
	// Sorted orders entries by normalized relative path instead of directory order.
	Sorted bool
	Filter EntryFilter
	// KeepFiles populates DirectoryFingerprint.Files.
	KeepFiles bool
	// RunID tags log records; a random UUID is used when empty.
	RunID  string
	Logger *slog.Logger
}

// DirectoryFingerprint is the immutable result of one run.
type DirectoryFingerprint struct {
	RunID      string         `json:"run_id"`
	Root       string         `json:"root"`
	Digest     Digest         `json:"digest"`
	FileCount  int            `json:"files"`
	WindowSize int            `json:"window_size"`
	Algorithm  string         `json:"algorithm"`
	Sorted     bool           `json:"sorted"`
	Filtered   int            `json:"filtered"`
	Failures   []EntryFailure `json:"-"`
	Files      []FileResult   `json:"entries,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	Duration   time.Duration  `json:"-"`
}

// Partial reports whether any entry failed and was left out.
func (f *DirectoryFingerprint) Partial() bool {
	return len(f.Failures) > 0
}

// Compute fingerprints the directory tree at root. Only a missing or
// non-directory root, invalid options, or context cancellation return an
// error; per-entry failures are reported on the result.
func Compute(ctx context.Context, root string, opts Options) (*DirectoryFingerprint, error) {
	engine, err := EngineByName(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if opts.WindowSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, opts.WindowSize)
	}
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := logging.NewComponentLogger(opts.Logger, "fingerprint").With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldRoot, root),
	)

	collector, err := NewCollector(CollectorConfig{
		Engine:     engine,
		WindowSize: opts.WindowSize,
		Filter:     opts.Filter,
		KeepFiles:  opts.KeepFiles,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	started := time.Now()
	logger.Debug("fingerprint started",
		logging.Int("window_size", opts.WindowSize),
		logging.String("algorithm", engine.Name()),
		logging.Bool("sorted", opts.Sorted),
	)

	items, err := ListItems(ctx, root, opts.Sorted)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	total := 0
	for _, item := range items {
		if item.Err == nil && item.Entry.IsRegular() {
			total++
		}
	}
	progress := logging.NewProgressSampler(10)
	done := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		collector.Collect(item)
		if item.Err != nil || !item.Entry.IsRegular() {
			continue
		}
		done++
		if total >= progressMinFiles {
			percent := float64(done) * 100 / float64(total)
			if progress.ShouldLog(percent) {
				logger.Info("fingerprint progress",
					logging.Int("files_done", done),
					logging.Int("files_total", total),
					logging.Int("percent", int(percent)),
				)
			}
		}
	}

	state := collector.State()
	result := &DirectoryFingerprint{
		RunID:      runID,
		Root:       root,
		Digest:     Aggregate(engine, state.Digests),
		FileCount:  state.FileCount,
		WindowSize: opts.WindowSize,
		Algorithm:  engine.Name(),
		Sorted:     opts.Sorted,
		Filtered:   state.Filtered,
		Failures:   state.Failures,
		Files:      state.Files,
		StartedAt:  started.UTC(),
		Duration:   time.Since(started),
	}

	logger.Info("fingerprint complete",
		logging.Int("files", result.FileCount),
		logging.Int("failures", len(result.Failures)),
		logging.String("digest", result.Digest.String()),
		logging.Duration("duration", result.Duration.Round(time.Millisecond)),
	)
	return result, nil
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}
	return nil
}
