package rules

import (
	"fmt"

	"remedian/internal/remedian"
)

// CacheSize flags the cache when the summed size exceeds maxBytes.
// Missing cache roots contribute zero to totalBytes at probe time, so a
// machine with no cache at all always passes.
func CacheSize(totalBytes, maxBytes int64) remedian.DetectionVerdict {
	var v remedian.DetectionVerdict

	if totalBytes > maxBytes {
		v.Flag(fmt.Sprintf("cache size %d bytes exceeds limit of %d bytes", totalBytes, maxBytes))
	} else {
		v.Observe(fmt.Sprintf("cache size %d bytes within limit of %d bytes", totalBytes, maxBytes))
	}
	return v
}
