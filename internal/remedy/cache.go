package remedy

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"remedian/internal/remedian"
)

// CleanCaches deletes the files under each configured cache root.
// Directories are left in place. A missing root is informational; a
// root that cannot be enumerated is a critical error; an individual
// file that cannot be deleted is a file-level error and the sweep
// continues.
func CleanCaches(roots []string, rec *remedian.Result) {
	for _, root := range roots {
		cleanRoot(root, rec)
	}
}

func cleanRoot(root string, rec *remedian.Result) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		log.Printf("[INFO] Cache root %s does not exist, nothing to clean", root)
		return
	}

	var removed int
	var freed int64
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		if err := os.Remove(path); err != nil {
			rec.RecordItemError(path, err.Error())
			return nil
		}
		removed++
		freed += size
		return nil
	})
	if walkErr != nil {
		rec.RecordCritical(fmt.Sprintf("enumerate cache root %s: %v", root, walkErr))
		return
	}

	log.Printf("[INFO] Cleared %d files (%d bytes) from %s", removed, freed, root)
	rec.RecordSuccess(fmt.Sprintf("cleared %d files (%d bytes) from %s", removed, freed, root))
}
