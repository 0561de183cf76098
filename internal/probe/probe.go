// Package probe queries the host for the machine state the rules grade:
// disk capacity, service status, cache size, print queue contents, and
// installed drivers. Probes only observe; corrective actions live in
// internal/remedy.
package probe

import (
	"context"

	"remedian/internal/rules"
)

// System is the query surface the checks run against. Implementations
// must treat an absent resource (service not installed, cache directory
// missing) as a normal answer, not an error.
type System interface {
	// DiskUsage returns total and free bytes for the volume at path.
	DiskUsage(ctx context.Context, path string) (total, free uint64, err error)

	// Service returns whether the named service is installed and, if
	// so, its current state ("Running", "Stopped", ...).
	Service(ctx context.Context, name string) (found bool, state string, err error)

	// CacheSize sums file sizes recursively under the given roots.
	// Missing roots contribute zero.
	CacheSize(ctx context.Context, roots []string) (int64, error)

	// PrintJobs lists the jobs currently queued on the local spooler.
	PrintJobs(ctx context.Context) ([]rules.PrintJob, error)

	// Drivers lists the installed device drivers.
	Drivers(ctx context.Context) ([]rules.Driver, error)
}

// Host is the real implementation of System for the local machine.
type Host struct{}

// New returns a probe for the local machine.
func New() *Host {
	return &Host{}
}
