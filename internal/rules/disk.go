package rules

import (
	"fmt"

	"remedian/internal/remedian"
)

// DiskUsage flags the volume when used space reaches thresholdPercent.
// A zero-capacity volume cannot be graded and is recorded as
// informational only.
func DiskUsage(path string, total, free uint64, thresholdPercent float64) remedian.DetectionVerdict {
	var v remedian.DetectionVerdict

	if total == 0 {
		v.Observe(fmt.Sprintf("volume %s reports zero capacity, skipping disk usage rule", path))
		return v
	}

	usedPercent := float64(total-free) / float64(total) * 100
	if usedPercent >= thresholdPercent {
		v.Flag(fmt.Sprintf("volume %s is %.1f%% full (threshold %.1f%%)", path, usedPercent, thresholdPercent))
	} else {
		v.Observe(fmt.Sprintf("volume %s is %.1f%% full (threshold %.1f%%)", path, usedPercent, thresholdPercent))
	}
	return v
}
