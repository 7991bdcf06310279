package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"ffp/internal/fingerprint"
	"ffp/internal/store"
	"ffp/internal/testsupport"
)

func TestMatchesRecorded(t *testing.T) {
	engine, err := fingerprint.EngineByName("")
	if err != nil {
		t.Fatalf("EngineByName: %v", err)
	}
	fp := &fingerprint.DirectoryFingerprint{Digest: engine.Sum([]byte("tree")), FileCount: 3}
	hexDigest := fp.Digest.String()

	tests := []struct {
		name    string
		run     store.Run
		want    bool
		wantErr bool
	}{
		{"same digest", store.Run{Digest: hexDigest, FileCount: 3}, true, false},
		{"uppercase hex", store.Run{Digest: strings.ToUpper(hexDigest), FileCount: 3}, true, false},
		{"file count differs", store.Run{Digest: hexDigest, FileCount: 4}, false, false},
		{"digest differs", store.Run{Digest: engine.Sum(nil).String(), FileCount: 3}, false, false},
		{"not hex", store.Run{ID: "r1", Digest: "not-a-digest", FileCount: 3}, false, true},
		{"truncated", store.Run{ID: "r2", Digest: hexDigest[:10], FileCount: 3}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchesRecorded(fp, &tt.run)
			if (err != nil) != tt.wantErr {
				t.Fatalf("matchesRecorded error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("matchesRecorded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckRejectsCorruptRecordedDigest(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePattern(t, filepath.Join(env.dataDir, "a.bin"), 10)

	s, err := store.Open(env.cfg.Store.Path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	err = s.Record(context.Background(), store.Run{
		ID:        uuid.NewString(),
		Root:      env.dataDir,
		Digest:    "zz-not-hex",
		FileCount: 1,
		Params: store.Params{
			WindowSize: int(env.cfg.Scan.WindowSize),
			Algorithm:  fingerprint.DefaultAlgorithm,
			Sorted:     true,
		},
		CreatedAt: time.Now(),
	})
	if closeErr := s.Close(); closeErr != nil {
		t.Fatalf("close store: %v", closeErr)
	}
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	_, stderr, err := runCLI(t, []string{"check", env.dataDir}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "parse digest") {
		t.Fatalf("expected parse digest error, got %v", err)
	}
	if exitCode(err) != exitFatal {
		t.Fatalf("corrupt record must be fatal, got exit %d", exitCode(err))
	}
	requireContains(t, stderr, "recorded run unreadable")
}
