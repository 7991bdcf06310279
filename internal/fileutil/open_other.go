//go:build !linux

package fileutil

import "os"

// OpenForRead opens path read-only.
func OpenForRead(path string) (*os.File, error) {
	return os.Open(path)
}
