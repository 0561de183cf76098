package probe

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CacheSize sums file sizes recursively under the given roots. A root
// that does not exist contributes zero; a root that exists but cannot
// be enumerated is an error.
func (*Host) CacheSize(ctx context.Context, roots []string) (int64, error) {
	var total int64
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		size, err := dirSize(root)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

func dirSize(root string) (int64, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return 0, nil
	}

	var size int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Entries deleted mid-walk are not a failure.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("enumerate %s: %w", root, err)
	}
	return size, nil
}
