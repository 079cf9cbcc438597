package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chronofy/internal/storage"
)

func TestRunOnce(t *testing.T) {
	repo := storage.NewMemory()
	repo.Seed(storage.KindEvents, []byte(`[{"id":"e1"}]`))
	repo.Seed(storage.KindTasks, []byte(`[{"id":"t1"}]`))
	// Classes and users left empty; they must be skipped, not written.

	dir := t.TempDir()
	if err := RunOnce(context.Background(), repo, dir); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	if err != nil {
		t.Fatalf("backups dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d snapshot files, want 2", len(entries))
	}

	var sawEvents bool
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".json") {
			t.Errorf("unexpected file name %q", e.Name())
		}
		if strings.HasPrefix(e.Name(), "events-") {
			sawEvents = true
			data, err := os.ReadFile(filepath.Join(dir, "backups", e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != `[{"id":"e1"}]` {
				t.Fatalf("snapshot content = %q", data)
			}
		}
	}
	if !sawEvents {
		t.Fatal("no events snapshot written")
	}
}

func TestStartValidatesExpression(t *testing.T) {
	repo := storage.NewMemory()

	r, err := Start("", repo, t.TempDir())
	if err != nil || r != nil {
		t.Fatalf("empty expression: %v, %v", r, err)
	}
	r.Stop() // nil-safe

	if _, err := Start("not a cron", repo, t.TempDir()); err == nil {
		t.Fatal("expected error for bad expression")
	}

	r, err = Start("0 3 * * *", repo, t.TempDir())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.Stop()
}
