package fingerprint

import (
	"errors"
	"log/slog"

	"ffp/internal/logging"
)

// EntryFilter decides whether a regular file takes part in the fingerprint.
type EntryFilter interface {
	Match(entry FileEntry) (bool, error)
}

// FileResult describes one file that contributed a digest.
type FileResult struct {
	RelPath  string   `json:"path"`
	Size     int64    `json:"size"`
	Strategy Strategy `json:"strategy"`
	Digest   Digest   `json:"digest"`
}

// State accumulates per-file digests for one run. FileCount always equals
// len(Digests).
type State struct {
	Digests   []Digest
	FileCount int
	Filtered  int
	Failures  []EntryFailure
	Files     []FileResult
}

// Collector turns walk items into per-file digests, in the order it receives them.
type Collector struct {
	engine    Engine
	window    int
	filter    EntryFilter
	keepFiles bool
	logger    *slog.Logger
	state     State
}

// CollectorConfig configures a Collector.
type CollectorConfig struct {
	Engine     Engine
	WindowSize int
	Filter     EntryFilter
	// KeepFiles records a FileResult for every contributing file.
	KeepFiles bool
	Logger    *slog.Logger
}

// NewCollector validates cfg and returns an empty collector.
func NewCollector(cfg CollectorConfig) (*Collector, error) {
	if cfg.WindowSize <= 0 {
		return nil, ErrInvalidWindow
	}
	if cfg.Engine == nil {
		return nil, errors.New("collector requires a digest engine")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Collector{
		engine:    cfg.Engine,
		window:    cfg.WindowSize,
		filter:    cfg.Filter,
		keepFiles: cfg.KeepFiles,
		logger:    logger,
	}, nil
}

// Collect processes one walk item. Failures are recorded on the state and
// never returned.
func (c *Collector) Collect(item WalkItem) {
	entry := item.Entry
	if item.Err != nil {
		c.fail(entry.Path, FailureWalk, item.Err)
		logging.WarnWithContext(c.logger, "walk entry failed",
			"walk_entry_failed",
			logging.String(logging.FieldPath, entry.Path),
			logging.Error(item.Err),
			logging.String(logging.FieldErrorHint, "check permissions on the listed path"),
			logging.String(logging.FieldImpact, "entry excluded from fingerprint"),
		)
		return
	}

	c.logger.Debug("scanning", logging.String(logging.FieldPath, entry.Path))
	if !entry.IsRegular() {
		c.logger.Debug("skipping non-regular entry",
			logging.String(logging.FieldPath, entry.Path),
			logging.String("mode", entry.Mode.Type().String()))
		return
	}

	if c.filter != nil {
		ok, err := c.filter.Match(entry)
		if err != nil {
			c.fail(entry.Path, FailureFilter, err)
			logging.WarnWithContext(c.logger, "filter evaluation failed",
				"filter_failed",
				logging.String(logging.FieldPath, entry.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix scan.filter so it returns a boolean for every file"),
				logging.String(logging.FieldImpact, "file excluded from fingerprint"),
			)
			return
		}
		if !ok {
			c.state.Filtered++
			c.logger.Debug("file filtered out", logging.String(logging.FieldPath, entry.Path))
			return
		}
	}

	strategy := StrategyFor(entry.Size, c.window)
	data, err := Sample(entry.Path, entry.Size, c.window)
	if err != nil {
		c.fail(entry.Path, FailureRead, err)
		logging.WarnWithContext(c.logger, "sample failed",
			"sample_failed",
			logging.String(logging.FieldPath, entry.Path),
			logging.Int64("size", entry.Size),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "file may be unreadable or changed during the scan"),
			logging.String(logging.FieldImpact, "file excluded from fingerprint"),
		)
		return
	}

	digest := c.engine.Sum(data)
	c.state.Digests = append(c.state.Digests, digest)
	c.state.FileCount++
	if c.keepFiles {
		c.state.Files = append(c.state.Files, FileResult{
			RelPath:  entry.RelPath,
			Size:     entry.Size,
			Strategy: strategy,
			Digest:   digest,
		})
	}

	c.logger.Debug("file fingerprinted",
		logging.String(logging.FieldPath, entry.Path),
		logging.Int64("size", entry.Size),
		logging.String("strategy", strategy.String()),
		logging.Int("bytes_read", len(data)),
		logging.String("digest", digest.String()),
	)
}

// State returns a snapshot of the accumulated state.
func (c *Collector) State() State {
	s := c.state
	s.Digests = append([]Digest(nil), c.state.Digests...)
	s.Failures = append([]EntryFailure(nil), c.state.Failures...)
	s.Files = append([]FileResult(nil), c.state.Files...)
	return s
}

func (c *Collector) fail(path string, kind FailureKind, err error) {
	c.state.Failures = append(c.state.Failures, EntryFailure{Path: path, Kind: kind, Err: err})
}
