package main

import (
	"context"
	"errors"
	"testing"

	"remedian/internal/config"
	"remedian/internal/rules"
)

type fakeProbe struct {
	total, free uint64
	diskErr     error

	serviceFound bool
	serviceState string

	cacheBytes int64

	jobs    []rules.PrintJob
	drivers []rules.Driver
}

func (f *fakeProbe) DiskUsage(context.Context, string) (uint64, uint64, error) {
	return f.total, f.free, f.diskErr
}

func (f *fakeProbe) Service(context.Context, string) (bool, string, error) {
	return f.serviceFound, f.serviceState, nil
}

func (f *fakeProbe) CacheSize(context.Context, []string) (int64, error) {
	return f.cacheBytes, nil
}

func (f *fakeProbe) PrintJobs(context.Context) ([]rules.PrintJob, error) {
	return f.jobs, nil
}

func (f *fakeProbe) Drivers(context.Context) ([]rules.Driver, error) {
	return f.drivers, nil
}

func testDeps(t *testing.T, p *fakeProbe) *deps {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load config: %v", err)
	}
	return &deps{cfg: cfg, probe: p}
}

func TestLoadDepsDerivesDeviceID(t *testing.T) {
	d, err := loadDeps()
	if err != nil {
		t.Fatalf("loadDeps failed: %v", err)
	}
	if d.cfg.Device.IDDevice <= 0 {
		t.Errorf("IDDevice = %d, want a positive id derived from hardware identity", d.cfg.Device.IDDevice)
	}
}

func TestRegistryNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range checkRegistry() {
		if seen[c.Name] {
			t.Errorf("Duplicate check name %q", c.Name)
		}
		seen[c.Name] = true
		if c.Detect == nil || c.Remediate == nil {
			t.Errorf("Check %q missing detect or remediate", c.Name)
		}
	}
	if _, ok := findCheck("disk-space"); !ok {
		t.Error("findCheck should resolve disk-space")
	}
	if _, ok := findCheck("nope"); ok {
		t.Error("findCheck should reject unknown names")
	}
}

func TestDetectDiskSpaceUsesConfiguredThreshold(t *testing.T) {
	const gb = uint64(1024 * 1024 * 1024)
	d := testDeps(t, &fakeProbe{total: 100 * gb, free: 5 * gb})

	v := detectDiskSpace(context.Background(), d)
	if !v.NeedsRemediation {
		t.Error("95% used must be flagged at the default 90% threshold")
	}

	d.probe = &fakeProbe{total: 100 * gb, free: 50 * gb}
	if v := detectDiskSpace(context.Background(), d); v.NeedsRemediation {
		t.Error("50% used must pass at the default 90% threshold")
	}
}

func TestDetectProbeFailureDoesNotEscalate(t *testing.T) {
	d := testDeps(t, &fakeProbe{diskErr: errors.New("volume not ready")})

	v := detectDiskSpace(context.Background(), d)
	if v.NeedsRemediation {
		t.Error("Probe failure must not flag the verdict")
	}
	if len(v.Reasons) == 0 {
		t.Error("Probe failure should be recorded as a reason")
	}
}

func TestDetectServiceAbsentIsCompliant(t *testing.T) {
	d := testDeps(t, &fakeProbe{serviceFound: false})
	if v := detectServiceHealth(context.Background(), d); v.NeedsRemediation {
		t.Error("Absent service must stay compliant")
	}

	d = testDeps(t, &fakeProbe{serviceFound: true, serviceState: "Stopped"})
	if v := detectServiceHealth(context.Background(), d); !v.NeedsRemediation {
		t.Error("Stopped service must be flagged")
	}
}
