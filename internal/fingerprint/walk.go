package fingerprint

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// FileEntry is one filesystem entry produced by the walker. Path is usable
// with the os package; RelPath is slash-separated and relative to the root.
type FileEntry struct {
	Path    string
	RelPath string
	Size    int64
	Mode    fs.FileMode
}

// IsRegular reports whether the entry is a regular file.
func (e FileEntry) IsRegular() bool {
	return e.Mode.IsRegular()
}

// WalkItem is either a resolved entry or a walk-level failure. When Err is
// set, Entry only carries the path that failed.
type WalkItem struct {
	Entry FileEntry
	Err   error
}

// WalkFunc receives walk items in traversal order. Returning an error stops the walk.
type WalkFunc func(WalkItem) error

// Walk enumerates root recursively, yielding the root itself, every directory,
// and every non-directory entry. Symbolic links below the root are reported
// but not followed.
//
// When sorted is true, items are yielded in lexical order of their
// NFC-normalized relative path, which is stable across filesystems. Otherwise
// items are yielded in the order the operating system lists them.
func Walk(ctx context.Context, root string, sorted bool, fn WalkFunc) error {
	w := &walker{ctx: ctx, root: root, emit: fn}
	if sorted {
		w.emit = func(item WalkItem) error {
			w.buffered = append(w.buffered, item)
			return nil
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if err := w.emit(WalkItem{Entry: FileEntry{Path: root, RelPath: ".", Size: info.Size(), Mode: info.Mode()}}); err != nil {
		return err
	}
	if info.IsDir() {
		if err := w.visit(root, ""); err != nil {
			return err
		}
	}

	if !sorted {
		return nil
	}
	sortItems(w.buffered)
	for _, item := range w.buffered {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

// ListItems runs Walk and returns every item it yields.
func ListItems(ctx context.Context, root string, sorted bool) ([]WalkItem, error) {
	var items []WalkItem
	err := Walk(ctx, root, sorted, func(item WalkItem) error {
		items = append(items, item)
		return nil
	})
	return items, err
}

type walker struct {
	ctx      context.Context
	root     string
	emit     WalkFunc
	buffered []WalkItem
}

func (w *walker) visit(dir, rel string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(dir)
	if err != nil {
		return w.emitFailure(dir, rel, err)
	}
	entries, readErr := f.ReadDir(-1)
	_ = f.Close()

	for _, entry := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		childPath := filepath.Join(dir, entry.Name())
		childRel := path.Join(rel, filepath.ToSlash(entry.Name()))

		info, err := entry.Info()
		if err != nil {
			if err := w.emitFailure(childPath, childRel, err); err != nil {
				return err
			}
			continue
		}
		item := WalkItem{Entry: FileEntry{
			Path:    childPath,
			RelPath: childRel,
			Size:    info.Size(),
			Mode:    info.Mode(),
		}}
		if err := w.emit(item); err != nil {
			return err
		}
		if entry.IsDir() {
			if err := w.visit(childPath, childRel); err != nil {
				return err
			}
		}
	}

	if readErr != nil {
		return w.emitFailure(dir, rel, readErr)
	}
	return nil
}

func (w *walker) emitFailure(p, rel string, err error) error {
	if rel == "" {
		rel = "."
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		err = &fs.PathError{Op: "walk", Path: p, Err: err}
	}
	return w.emit(WalkItem{Entry: FileEntry{Path: p, RelPath: rel}, Err: err})
}

// SortKey returns the ordering key used for sorted walks.
func SortKey(relPath string) string {
	return norm.NFC.String(relPath)
}

func sortItems(items []WalkItem) {
	keys := make([]string, len(items))
	for i := range items {
		keys[i] = SortKey(items[i].Entry.RelPath)
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	// Names that only differ in normalization share a key; the raw path
	// breaks the tie so the order never depends on directory listing order.
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka != kb {
			return ka < kb
		}
		return items[idx[a]].Entry.RelPath < items[idx[b]].Entry.RelPath
	})
	sorted := make([]WalkItem, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}
