package reaper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
	"go.uber.org/zap"
)

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := filepath.Join(dir, "old.csv")
	fresh := filepath.Join(dir, "fresh.csv")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("name\nJohn"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chtimes(old, now.Add(-2*time.Hour), now.Add(-2*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	r := New(config.UploadConfig{DIR: dir, RETENTION: time.Hour, REAPER_SCHEDULE: "@every 1m"}, zap.NewNop().Sugar())
	n, err := r.Sweep(now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 file removed, got %d", n)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old upload should be gone")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh upload should be kept")
	}
	if _, err := os.Stat(filepath.Join(dir, "nested")); err != nil {
		t.Error("directories are left alone")
	}
}

func TestSweepMissingDir(t *testing.T) {
	r := New(config.UploadConfig{DIR: filepath.Join(t.TempDir(), "missing"), RETENTION: time.Hour}, zap.NewNop().Sugar())
	if n, err := r.Sweep(time.Now()); err != nil || n != 0 {
		t.Errorf("got %d, %v", n, err)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	r := New(config.UploadConfig{DIR: t.TempDir(), RETENTION: time.Hour, REAPER_SCHEDULE: "not a schedule"}, zap.NewNop().Sugar())
	if err := r.Start(); err == nil {
		r.Stop()
		t.Error("expected schedule error")
	}
}
