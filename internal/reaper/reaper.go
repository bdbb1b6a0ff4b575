package reaper

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// UploadReaper removes files left in the upload directory. Bulk upload handlers delete
// their own temp files; this catches whatever a crash left behind.
type UploadReaper struct {
	dir       string
	retention time.Duration
	schedule  string
	logger    *zap.SugaredLogger
	// OnReaped, when set, receives the number of files removed by each sweep.
	OnReaped func(n int)

	cron *cron.Cron
}

func New(cfg config.UploadConfig, logger *zap.SugaredLogger) *UploadReaper {
	return &UploadReaper{
		dir:       cfg.DIR,
		retention: cfg.RETENTION,
		schedule:  cfg.REAPER_SCHEDULE,
		logger:    logger,
	}
}

// Start schedules the sweep. A sweep still running when the next one is due is skipped.
func (r *UploadReaper) Start() error {
	r.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := r.cron.AddFunc(r.schedule, func() {
		n, err := r.Sweep(time.Now())
		if err != nil {
			r.logger.Errorf("[UPLOAD-REAPER] sweep failed: %v", err)
		}
		if n > 0 {
			r.logger.Infof("[UPLOAD-REAPER] removed %d files older than %s from %q", n, r.retention, r.dir)
		}
		if r.OnReaped != nil {
			r.OnReaped(n)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule upload reaper %q: %w", r.schedule, err)
	}

	r.logger.Infof("[UPLOAD-REAPER] started schedule=%q dir=%q retention=%s", r.schedule, r.dir, r.retention)
	r.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (r *UploadReaper) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// Sweep deletes regular files in the upload directory last modified before
// now minus the retention. A missing directory is not an error.
func (r *UploadReaper) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read upload directory: %w", err)
	}

	threshold := now.Add(-r.retention)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(threshold) {
			continue
		}

		path := filepath.Join(r.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.logger.Warnf("[UPLOAD-REAPER] failed to remove %q: %v", path, err)
			continue
		}
		removed++
	}

	return removed, nil
}
