package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"remedian/internal/remedian"
)

const artifactMode = 0o600

// PersistLocally writes the serialized report to filename under the
// preferred directory, falling back to the fallback directory when the
// preferred one is not writable. A failure to write either location is
// recorded as exactly one critical error; PersistLocally itself never
// fails. It returns the path written, or "" when both locations failed.
func PersistLocally(data []byte, filename, preferred, fallback string, rec *remedian.Result) string {
	preferredErr := writeArtifact(data, preferred, filename)
	if preferredErr == nil {
		log.Printf("[INFO] Report written to %s", filepath.Join(preferred, filename))
		return filepath.Join(preferred, filename)
	}
	log.Printf("[WARN] Could not write report to %s: %v", preferred, preferredErr)

	fallbackErr := writeArtifact(data, fallback, filename)
	if fallbackErr == nil {
		log.Printf("[INFO] Report written to fallback %s", filepath.Join(fallback, filename))
		return filepath.Join(fallback, filename)
	}

	rec.RecordCritical(fmt.Sprintf("could not persist report: preferred %s (%v), fallback %s (%v)",
		preferred, preferredErr, fallback, fallbackErr))
	return ""
}

func writeArtifact(data []byte, dir, filename string) error {
	if dir == "" {
		return fmt.Errorf("no directory configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filename), data, artifactMode)
}
