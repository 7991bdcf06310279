package store

import "time"

// Params identifies the settings that produced a digest. Two runs are only
// comparable when their Params are equal.
type Params struct {
	WindowSize int
	Algorithm  string
	Sorted     bool
	Filter     string
}

// Run is one recorded fingerprint.
type Run struct {
	ID        string        `json:"id"`
	Root      string        `json:"root"`
	Digest    string        `json:"digest"`
	FileCount int           `json:"files"`
	Failures  int           `json:"failures"`
	Filtered  int           `json:"filtered"`
	Params    Params        `json:"params"`
	Duration  time.Duration `json:"duration_ns"`
	CreatedAt time.Time     `json:"created_at"`
}
