package probe

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
)

// DiskUsage returns total and free bytes for the volume at path.
func (*Host) DiskUsage(ctx context.Context, path string) (uint64, uint64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, 0, fmt.Errorf("query disk usage for %s: %w", path, err)
	}
	return usage.Total, usage.Free, nil
}
