package remedy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"remedian/internal/remedian"
	"remedian/internal/rules"
)

func TestCleanCaches(t *testing.T) {
	t.Run("removes files keeps directories", func(t *testing.T) {
		root := t.TempDir()
		mustWrite(t, filepath.Join(root, "a.tmp"))
		mustWrite(t, filepath.Join(root, "sub", "b.tmp"))

		rec := remedian.NewResult()
		CleanCaches([]string{root}, rec)

		if !rec.Succeeded() {
			t.Fatalf("Unexpected criticals: %v", rec.CriticalErrors)
		}
		if len(rec.FileLevelErrors) != 0 {
			t.Errorf("Unexpected item errors: %v", rec.FileLevelErrors)
		}
		if len(rec.CompletedTasks) != 1 {
			t.Errorf("CompletedTasks = %d, want 1 summary task", len(rec.CompletedTasks))
		}
		if _, err := os.Stat(filepath.Join(root, "a.tmp")); !os.IsNotExist(err) {
			t.Error("a.tmp should be removed")
		}
		if _, err := os.Stat(filepath.Join(root, "sub")); err != nil {
			t.Error("Subdirectory should remain")
		}
	})

	t.Run("missing root is informational", func(t *testing.T) {
		rec := remedian.NewResult()
		CleanCaches([]string{filepath.Join(t.TempDir(), "nope")}, rec)
		if !rec.Succeeded() || len(rec.FileLevelErrors) != 0 {
			t.Errorf("Missing root must record nothing: %v %v", rec.CriticalErrors, rec.FileLevelErrors)
		}
	})
}

func TestCleanStaleProfiles(t *testing.T) {
	now := time.Now()
	maxAge := 90 * 24 * time.Hour

	t.Run("removes only stale directories", func(t *testing.T) {
		root := t.TempDir()
		stale := filepath.Join(root, "old-user")
		fresh := filepath.Join(root, "new-user")
		for _, dir := range []string{stale, fresh} {
			if err := os.Mkdir(dir, 0o755); err != nil {
				t.Fatalf("Failed to create profile dir: %v", err)
			}
		}
		past := now.Add(-maxAge - 24*time.Hour)
		if err := os.Chtimes(stale, past, past); err != nil {
			t.Fatalf("Failed to age directory: %v", err)
		}

		rec := remedian.NewResult()
		CleanStaleProfiles(root, maxAge, now, rec)

		if _, err := os.Stat(stale); !os.IsNotExist(err) {
			t.Error("Stale profile should be removed")
		}
		if _, err := os.Stat(fresh); err != nil {
			t.Error("Fresh profile should remain")
		}
		if len(rec.CompletedTasks) != 1 {
			t.Errorf("CompletedTasks = %d, want 1", len(rec.CompletedTasks))
		}
	})

	t.Run("missing root is informational", func(t *testing.T) {
		rec := remedian.NewResult()
		CleanStaleProfiles(filepath.Join(t.TempDir(), "nope"), maxAge, now, rec)
		if !rec.Succeeded() {
			t.Errorf("Missing root must not be critical: %v", rec.CriticalErrors)
		}
	})

	t.Run("empty root skips", func(t *testing.T) {
		rec := remedian.NewResult()
		CleanStaleProfiles("", maxAge, now, rec)
		if !rec.Succeeded() || len(rec.CompletedTasks) != 0 {
			t.Error("Unconfigured root must record nothing")
		}
	})
}

type fakeUpdater struct {
	outcome UpdateOutcome
	err     error
}

func (f fakeUpdater) Update(context.Context, rules.Driver) (UpdateOutcome, error) {
	return f.outcome, f.err
}

func TestUpdateDrivers(t *testing.T) {
	stale := []rules.Driver{{Device: "Net Adapter", Version: "1.0"}}

	t.Run("applied update recorded as success", func(t *testing.T) {
		rec := remedian.NewResult()
		u := fakeUpdater{outcome: UpdateOutcome{Device: "Net Adapter", Applied: true, Detail: "2.0 installed"}}
		UpdateDrivers(context.Background(), u, stale, rec)
		if len(rec.CompletedTasks) != 1 {
			t.Errorf("CompletedTasks = %d, want 1", len(rec.CompletedTasks))
		}
	})

	t.Run("failure is a file-level error", func(t *testing.T) {
		rec := remedian.NewResult()
		u := fakeUpdater{err: errors.New("search timed out")}
		UpdateDrivers(context.Background(), u, stale, rec)
		if !rec.Succeeded() {
			t.Errorf("Update failure must not be critical: %v", rec.CriticalErrors)
		}
		if len(rec.FileLevelErrors) != 1 {
			t.Errorf("FileLevelErrors = %d, want 1", len(rec.FileLevelErrors))
		}
	})

	t.Run("unsupported updater is informational", func(t *testing.T) {
		rec := remedian.NewResult()
		UpdateDrivers(context.Background(), UnsupportedUpdater{}, stale, rec)
		if !rec.Succeeded() || len(rec.FileLevelErrors) != 0 || len(rec.CompletedTasks) != 0 {
			t.Error("Unsupported updates must record nothing")
		}
	})
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("cache"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}
