// Package backup periodically snapshots the persisted collections into
// timestamped JSON files, as a safety net against a corrupted or
// accidentally wiped primary store.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	appLog "chronofy/internal/log"
	"chronofy/internal/storage"
)

var kinds = []storage.Kind{
	storage.KindEvents,
	storage.KindTasks,
	storage.KindClasses,
	storage.KindUsers,
}

// Runner owns the cron schedule.
type Runner struct {
	c *cron.Cron
}

// Start schedules backups of repo into <dataDir>/backups on the given
// cron expression. An empty expression disables backups and returns a
// nil Runner, which is safe to Stop.
func Start(expr string, repo storage.Repository, dataDir string) (*Runner, error) {
	if expr == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		if err := RunOnce(context.Background(), repo, dataDir); err != nil {
			appLog.Error("backup run failed", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("bad backup cron expression %q: %w", expr, err)
	}

	c.Start()
	appLog.Info("backup schedule started", "cron", expr, "dir", filepath.Join(dataDir, "backups"))
	return &Runner{c: c}, nil
}

// Stop halts the schedule. Nil-safe.
func (r *Runner) Stop() {
	if r == nil {
		return
	}
	r.c.Stop()
}

// RunOnce writes one timestamped snapshot per collection. Kinds that
// are missing from the store are skipped, not treated as failures.
func RunOnce(ctx context.Context, repo storage.Repository, dataDir string) error {
	dir := filepath.Join(dataDir, "backups")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, kind := range kinds {
		data, err := repo.Load(ctx, kind)
		if err != nil {
			return fmt.Errorf("backup load %s: %w", kind, err)
		}
		if len(data) == 0 {
			continue
		}
		name := filepath.Join(dir, fmt.Sprintf("%s-%s.json", kind, stamp))
		if err := os.WriteFile(name, data, 0o600); err != nil {
			return fmt.Errorf("backup write %s: %w", kind, err)
		}
	}

	appLog.Info("backup complete", "stamp", stamp)
	return nil
}
