package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"remedian/internal/config"
	"remedian/internal/probe"
	"remedian/internal/remedian"
	"remedian/internal/remedy"
	"remedian/internal/rules"
)

// deps holds the collaborators a check runs against.
type deps struct {
	cfg     *config.Config
	probe   probe.System
	updater remedy.Updater
}

// check pairs a detection with its remediation.
type check struct {
	Name        string
	Description string
	Detect      func(ctx context.Context, d *deps) remedian.DetectionVerdict
	Remediate   func(ctx context.Context, d *deps, rec *remedian.Result)
}

func checkRegistry() []check {
	return []check{
		{
			Name:        "disk-space",
			Description: "Flags a nearly full volume; frees space by clearing caches and stale profiles",
			Detect:      detectDiskSpace,
			Remediate:   remediateDiskSpace,
		},
		{
			Name:        "service-health",
			Description: "Flags a stopped service; restarts it and confirms it comes back up",
			Detect:      detectServiceHealth,
			Remediate:   remediateServiceHealth,
		},
		{
			Name:        "cache-size",
			Description: "Flags an oversized cache; deletes the cached files",
			Detect:      detectCacheSize,
			Remediate:   remediateCacheSize,
		},
		{
			Name:        "print-queue",
			Description: "Flags stuck print jobs; resets the spooler and purges the queue",
			Detect:      detectPrintQueue,
			Remediate:   remediatePrintQueue,
		},
		{
			Name:        "drivers",
			Description: "Flags outdated or known-bad drivers; attempts driver updates",
			Detect:      detectDrivers,
			Remediate:   remediateDrivers,
		},
	}
}

func findCheck(name string) (check, bool) {
	for _, c := range checkRegistry() {
		if c.Name == name {
			return c, true
		}
	}
	return check{}, false
}

func detectDiskSpace(ctx context.Context, d *deps) remedian.DetectionVerdict {
	path := d.cfg.Checks.Disk.Path
	total, free, err := d.probe.DiskUsage(ctx, path)
	if err != nil {
		return probeWarning("disk usage", err)
	}
	debugf("Volume %s: total=%d free=%d", path, total, free)
	return rules.DiskUsage(path, total, free, d.cfg.Checks.Disk.ThresholdPercent)
}

func detectServiceHealth(ctx context.Context, d *deps) remedian.DetectionVerdict {
	name := d.cfg.Checks.Service.Name
	found, state, err := d.probe.Service(ctx, name)
	if err != nil {
		return probeWarning("service status", err)
	}
	return rules.ServiceHealth(name, found, state)
}

func detectCacheSize(ctx context.Context, d *deps) remedian.DetectionVerdict {
	total, err := d.probe.CacheSize(ctx, d.cfg.Checks.Cache.Roots)
	if err != nil {
		return probeWarning("cache size", err)
	}
	return rules.CacheSize(total, d.cfg.Checks.Cache.MaxBytes)
}

func detectPrintQueue(ctx context.Context, d *deps) remedian.DetectionVerdict {
	jobs, err := d.probe.PrintJobs(ctx)
	if err != nil {
		return probeWarning("print queue", err)
	}
	maxAge := time.Duration(d.cfg.Checks.PrintQueue.MaxJobAgeMinutes) * time.Minute
	return rules.StuckPrintJobs(jobs, time.Now(), maxAge)
}

func detectDrivers(ctx context.Context, d *deps) remedian.DetectionVerdict {
	drivers, err := d.probe.Drivers(ctx)
	if err != nil {
		return probeWarning("driver inventory", err)
	}
	return rules.StaleDrivers(drivers, time.Now(), driverPolicy(d.cfg))
}

func remediateDiskSpace(_ context.Context, d *deps, rec *remedian.Result) {
	remedy.CleanCaches(d.cfg.Checks.Cache.Roots, rec)
	maxAge := time.Duration(d.cfg.Checks.Profiles.MaxAgeDays) * 24 * time.Hour
	remedy.CleanStaleProfiles(d.cfg.Checks.Profiles.Root, maxAge, time.Now(), rec)
}

func remediateServiceHealth(ctx context.Context, d *deps, rec *remedian.Result) {
	restarter := &remedy.ServiceRestarter{Probe: d.probe}
	restarter.Restart(ctx, d.cfg.Checks.Service.Name, rec)
}

func remediateCacheSize(_ context.Context, d *deps, rec *remedian.Result) {
	remedy.CleanCaches(d.cfg.Checks.Cache.Roots, rec)
}

func remediatePrintQueue(ctx context.Context, d *deps, rec *remedian.Result) {
	restarter := &remedy.ServiceRestarter{Probe: d.probe}
	remedy.ResetPrintQueue(ctx, restarter, spoolerServiceName(), d.cfg.Checks.PrintQueue.SpoolDir, rec)
}

func remediateDrivers(ctx context.Context, d *deps, rec *remedian.Result) {
	drivers, err := d.probe.Drivers(ctx)
	if err != nil {
		// The driver inventory is an optional probe; without it there
		// is nothing to update.
		log.Printf("[WARN] Driver inventory probe failed: %v", err)
		return
	}
	stale := rules.FilterStale(drivers, time.Now(), driverPolicy(d.cfg))
	remedy.UpdateDrivers(ctx, d.updater, stale, rec)
}

// probeWarning is the shared edge-case policy: a probe failure is
// logged and recorded as a reason, but never escalates the verdict.
func probeWarning(what string, err error) remedian.DetectionVerdict {
	log.Printf("[WARN] %s probe failed: %v", what, err)
	var v remedian.DetectionVerdict
	v.Observe(fmt.Sprintf("%s probe failed: %v", what, err))
	return v
}

func driverPolicy(cfg *config.Config) rules.DriverPolicy {
	policy := rules.DriverPolicy{
		MaxAgeDays:        cfg.Checks.Drivers.MaxAgeDays,
		PrinterMaxAgeDays: cfg.Checks.Drivers.PrinterMaxAgeDays,
	}
	// Patterns were compiled during config validation; a failure here
	// would already have rejected the config.
	policy.KnownBad, _ = cfg.KnownBadPatterns()
	return policy
}

func spoolerServiceName() string {
	if runtime.GOOS == "windows" {
		return "Spooler"
	}
	return "cups"
}
