package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tmp"), 100)
	writeFile(t, filepath.Join(dir, "sub", "b.tmp"), 250)

	h := New()

	t.Run("sums files recursively", func(t *testing.T) {
		size, err := h.CacheSize(context.Background(), []string{dir})
		if err != nil {
			t.Fatalf("CacheSize failed: %v", err)
		}
		if size != 350 {
			t.Errorf("Size = %d, want 350", size)
		}
	})

	t.Run("missing root contributes zero", func(t *testing.T) {
		missing := filepath.Join(dir, "does-not-exist")
		size, err := h.CacheSize(context.Background(), []string{dir, missing})
		if err != nil {
			t.Fatalf("CacheSize failed: %v", err)
		}
		if size != 350 {
			t.Errorf("Size = %d, want 350", size)
		}
	})

	t.Run("no roots", func(t *testing.T) {
		size, err := h.CacheSize(context.Background(), nil)
		if err != nil {
			t.Fatalf("CacheSize failed: %v", err)
		}
		if size != 0 {
			t.Errorf("Size = %d, want 0", size)
		}
	})
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}
