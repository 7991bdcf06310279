// Package fileutil holds small filesystem helpers shared by the scanner, the
// configuration loader, and the fingerprint store.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// ReadSection reads exactly length bytes starting at offset. The returned
// slice only ever holds bytes that were actually read; when the file ends
// early the partial slice is returned together with io.ErrUnexpectedEOF.
func ReadSection(r io.ReaderAt, offset, length int64) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("read section: negative length %d", length)
	}
	buf := make([]byte, length)
	n, err := io.ReadFull(io.NewSectionReader(r, offset, length), buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return buf[:n], err
	}
	return buf, nil
}
