package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"ffp/internal/fileutil"
)

const runColumns = "id, root, digest, file_count, failures, filtered, window_size, algorithm, sorted, filter, duration_ms, created_at"

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	lockTimeout    = 5 * time.Second
	lockRetryDelay = 50 * time.Millisecond
)

// ErrLocked is returned when another process holds the writer lock past the timeout.
var ErrLocked = errors.New("fingerprint store is locked by another process")

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the database at path and creates the schema
// when missing.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := fileutil.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path, lock: flock.New(path + ".lock")}
	if err := s.withLock(context.Background(), func() error { return s.initSchema(context.Background()) }); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run. A missing ID or CreatedAt is an error; callers own both.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	if strings.TrimSpace(run.Root) == "" {
		return errors.New("run root is required")
	}
	if run.CreatedAt.IsZero() {
		return errors.New("run created_at is required")
	}
	return s.withLock(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.Root,
			run.Digest,
			run.FileCount,
			run.Failures,
			run.Filtered,
			run.Params.WindowSize,
			run.Params.Algorithm,
			boolToInt(run.Params.Sorted),
			run.Params.Filter,
			run.Duration.Milliseconds(),
			run.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		return nil
	})
}

// Latest returns the most recent run for root recorded with params, or nil
// when none exists.
func (s *Store) Latest(ctx context.Context, root string, params Params) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs
         WHERE root = ? AND window_size = ? AND algorithm = ? AND sorted = ? AND filter = ?
         ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		root, params.WindowSize, params.Algorithm, boolToInt(params.Sorted), params.Filter,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// List returns recorded runs newest first. An empty root lists every root;
// limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, root string, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if root != "" {
		query += ` WHERE root = ?`
		args = append(args, root)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Forget deletes every run recorded for root and returns how many were removed.
func (s *Store) Forget(ctx context.Context, root string) (int64, error) {
	var removed int64
	err := s.withLock(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE root = ?`, root)
		if err != nil {
			return fmt.Errorf("delete runs: %w", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	return removed, err
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	ok, err := s.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return ErrLocked
		}
		return fmt.Errorf("acquire lock %s: %w", filepath.Base(s.lock.Path()), err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		sorted     int
		durationMS int64
		createdRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Root,
		&run.Digest,
		&run.FileCount,
		&run.Failures,
		&run.Filtered,
		&run.Params.WindowSize,
		&run.Params.Algorithm,
		&sorted,
		&run.Params.Filter,
		&durationMS,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	run.Params.Sorted = sorted != 0
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if ts, err := time.Parse(timeLayout, createdRaw); err == nil {
		run.CreatedAt = ts
	}
	return &run, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
