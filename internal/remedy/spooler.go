package remedy

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"remedian/internal/remedian"
)

// ResetPrintQueue stops the spooler service, purges the spool
// directory, and starts the service again. Job files that cannot be
// deleted are file-level errors; a spooler that will not stop or start
// is critical.
func ResetPrintQueue(ctx context.Context, restarter *ServiceRestarter, serviceName, spoolDir string, rec *remedian.Result) {
	if err := restarter.Stop(ctx, serviceName); err != nil {
		rec.RecordCritical(fmt.Sprintf("stop %s for queue reset: %v", serviceName, err))
		return
	}

	purged := purgeSpoolDir(spoolDir, rec)

	// The spooler is started again even when the purge failed; a dead
	// spooler is worse than a full queue.
	if err := restarter.Start(ctx, serviceName); err != nil {
		rec.RecordCritical(fmt.Sprintf("start %s after queue reset: %v", serviceName, err))
		return
	}

	if purged {
		rec.RecordSuccess(fmt.Sprintf("reset print queue (service %s)", serviceName))
	}
}

func purgeSpoolDir(spoolDir string, rec *remedian.Result) bool {
	entries, err := os.ReadDir(spoolDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] Spool directory %s does not exist", spoolDir)
			return true
		}
		rec.RecordCritical(fmt.Sprintf("enumerate spool directory %s: %v", spoolDir, err))
		return false
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(spoolDir, entry.Name())
		if err := os.Remove(path); err != nil {
			rec.RecordItemError(path, err.Error())
			continue
		}
		removed++
	}
	log.Printf("[INFO] Purged %d spool files from %s", removed, spoolDir)
	return true
}
