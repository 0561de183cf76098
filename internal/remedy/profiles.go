package remedy

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"remedian/internal/remedian"
)

// CleanStaleProfiles removes profile directories under root that have
// not been modified within maxAge. A missing root is informational; a
// profile that cannot be removed is a file-level error.
func CleanStaleProfiles(root string, maxAge time.Duration, now time.Time, rec *remedian.Result) {
	if root == "" {
		log.Print("[INFO] No profile root configured, skipping profile cleanup")
		return
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] Profile root %s does not exist", root)
			return
		}
		rec.RecordCritical(fmt.Sprintf("enumerate profile root %s: %v", root, err))
		return
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			rec.RecordItemError(filepath.Join(root, entry.Name()), err.Error())
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}

		path := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			rec.RecordItemError(path, err.Error())
			continue
		}
		removed++
		rec.RecordSuccess(fmt.Sprintf("removed stale profile %s", path))
	}
	log.Printf("[INFO] Removed %d stale profiles from %s", removed, root)
}
