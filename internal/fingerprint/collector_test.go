package fingerprint_test

import (
	"crypto/sha256"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"ffp/internal/fingerprint"
	"ffp/internal/testsupport"
)

type extFilter string

func (f extFilter) Match(entry fingerprint.FileEntry) (bool, error) {
	return filepath.Ext(entry.RelPath) != string(f), nil
}

type brokenFilter struct{}

func (brokenFilter) Match(fingerprint.FileEntry) (bool, error) {
	return false, errors.New("filter exploded")
}

func newCollector(t *testing.T, window int, filter fingerprint.EntryFilter) *fingerprint.Collector {
	t.Helper()
	engine, err := fingerprint.EngineByName("sha256")
	if err != nil {
		t.Fatal(err)
	}
	c, err := fingerprint.NewCollector(fingerprint.CollectorConfig{
		Engine:     engine,
		WindowSize: window,
		Filter:     filter,
		KeepFiles:  true,
	})
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c
}

func regularEntry(path string, size int64) fingerprint.FileEntry {
	return fingerprint.FileEntry{Path: path, RelPath: filepath.Base(path), Size: size, Mode: 0o644}
}

func TestNewCollectorRejectsInvalidConfig(t *testing.T) {
	if _, err := fingerprint.NewCollector(fingerprint.CollectorConfig{WindowSize: 0}); !errors.Is(err, fingerprint.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
	if _, err := fingerprint.NewCollector(fingerprint.CollectorConfig{WindowSize: 8}); err == nil {
		t.Fatal("expected error without engine")
	}
}

func TestCollectorRecordsWalkFailures(t *testing.T) {
	c := newCollector(t, 16, nil)
	c.Collect(fingerprint.WalkItem{
		Entry: fingerprint.FileEntry{Path: "/nope"},
		Err:   &fs.PathError{Op: "open", Path: "/nope", Err: fs.ErrPermission},
	})

	state := c.State()
	if state.FileCount != 0 || len(state.Digests) != 0 {
		t.Fatalf("walk failure must not contribute, got %+v", state)
	}
	if len(state.Failures) != 1 || state.Failures[0].Kind != fingerprint.FailureWalk {
		t.Fatalf("expected one walk failure, got %+v", state.Failures)
	}
	if !errors.Is(state.Failures[0], fs.ErrPermission) {
		t.Fatalf("expected failure to unwrap to ErrPermission, got %v", state.Failures[0])
	}
}

func TestCollectorSkipsDirectoriesSilently(t *testing.T) {
	c := newCollector(t, 16, nil)
	c.Collect(fingerprint.WalkItem{Entry: fingerprint.FileEntry{Path: t.TempDir(), RelPath: ".", Mode: fs.ModeDir | 0o755}})
	c.Collect(fingerprint.WalkItem{Entry: fingerprint.FileEntry{Path: "/dev/null", RelPath: "null", Mode: fs.ModeDevice | fs.ModeCharDevice}})

	state := c.State()
	if state.FileCount != 0 || len(state.Digests) != 0 || len(state.Failures) != 0 {
		t.Fatalf("non-regular entries must be skipped silently, got %+v", state)
	}
}

func TestCollectorRecordsReadFailures(t *testing.T) {
	c := newCollector(t, 16, nil)
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(filepath.Join(t.TempDir(), "gone"), 5)})

	dir := t.TempDir()
	shrunk := filepath.Join(dir, "shrunk")
	testsupport.WriteBytes(t, shrunk, []byte("abc"))
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(shrunk, 10)})

	state := c.State()
	if state.FileCount != 0 {
		t.Fatalf("unreadable files must not be counted, got %d", state.FileCount)
	}
	if len(state.Failures) != 2 {
		t.Fatalf("expected two read failures, got %+v", state.Failures)
	}
	if !errors.Is(state.Failures[1], fingerprint.ErrShortRead) {
		t.Fatalf("expected short read failure, got %v", state.Failures[1])
	}
}

func TestCollectorDigestsFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	testsupport.WriteBytes(t, first, []byte("one"))
	testsupport.WriteBytes(t, second, []byte("two"))

	c := newCollector(t, 16, nil)
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(second, 3)})
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(first, 3)})

	state := c.State()
	if state.FileCount != len(state.Digests) || state.FileCount != 2 {
		t.Fatalf("expected two digests, got %+v", state)
	}
	if state.Digests[0] != fingerprint.Digest(sha256.Sum256([]byte("two"))) {
		t.Fatalf("digests must follow collection order")
	}
	if state.Files[1].RelPath != "first" || state.Files[1].Strategy != fingerprint.StrategyFull {
		t.Fatalf("unexpected file result %+v", state.Files[1])
	}
}

func TestCollectorAppliesFilter(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.txt")
	drop := filepath.Join(dir, "drop.tmp")
	testsupport.WriteBytes(t, keep, []byte("k"))
	testsupport.WriteBytes(t, drop, []byte("d"))

	c := newCollector(t, 16, extFilter(".tmp"))
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(keep, 1)})
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(drop, 1)})

	state := c.State()
	if state.FileCount != 1 || state.Filtered != 1 {
		t.Fatalf("expected one kept and one filtered file, got %+v", state)
	}

	broken := newCollector(t, 16, brokenFilter{})
	broken.Collect(fingerprint.WalkItem{Entry: regularEntry(keep, 1)})
	state = broken.State()
	if state.FileCount != 0 || len(state.Failures) != 1 || state.Failures[0].Kind != fingerprint.FailureFilter {
		t.Fatalf("expected filter failure, got %+v", state)
	}
}

func TestCollectorStateIsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	testsupport.WriteBytes(t, path, []byte("f"))

	c := newCollector(t, 16, nil)
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(path, 1)})
	snapshot := c.State()
	c.Collect(fingerprint.WalkItem{Entry: regularEntry(path, 1)})

	if len(snapshot.Digests) != 1 || snapshot.FileCount != 1 {
		t.Fatalf("snapshot changed after further collection: %+v", snapshot)
	}
}
