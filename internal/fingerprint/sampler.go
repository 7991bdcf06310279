package fingerprint

import (
	"errors"
	"fmt"
	"io"

	"ffp/internal/fileutil"
)

// Strategy selects which bytes of a file form its sample.
type Strategy int

const (
	// StrategyFull hashes the entire file.
	StrategyFull Strategy = iota
	// StrategyHeadTail hashes the first window bytes followed by the last window bytes.
	StrategyHeadTail
)

func (s Strategy) String() string {
	switch s {
	case StrategyFull:
		return "full"
	case StrategyHeadTail:
		return "head-tail"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StrategyFor returns StrategyFull when size < 2*window and StrategyHeadTail
// otherwise. The comparison halves size so windows near MaxInt64 cannot overflow.
func StrategyFor(size int64, window int) Strategy {
	if int64(window) > size/2 {
		return StrategyFull
	}
	return StrategyHeadTail
}

// Sample reads the sample bytes of the file at path, whose size was observed
// by the walker.
func Sample(path string, size int64, window int) ([]byte, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	f, err := fileutil.OpenForRead(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := SampleAt(f, size, window)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", path, err)
	}
	return data, nil
}

// SampleAt reads the sample of a size-byte object from r. The result holds
// exactly the bytes read; a source shorter than size yields ErrShortRead.
func SampleAt(r io.ReaderAt, size int64, window int) ([]byte, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	if size < 0 {
		return nil, fmt.Errorf("negative size %d", size)
	}

	if StrategyFor(size, window) == StrategyFull {
		return readSection(r, 0, size)
	}

	w := int64(window)
	head, err := readSection(r, 0, w)
	if err != nil {
		return nil, fmt.Errorf("head: %w", err)
	}
	tail, err := readSection(r, size-w, w)
	if err != nil {
		return nil, fmt.Errorf("tail: %w", err)
	}
	return append(head, tail...), nil
}

func readSection(r io.ReaderAt, offset, length int64) ([]byte, error) {
	data, err := fileutil.ReadSection(r, offset, length)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes at offset %d", ErrShortRead, len(data), length, offset)
		}
		return nil, err
	}
	return data, nil
}
