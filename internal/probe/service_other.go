//go:build !windows

package probe

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const serviceProbeTimeout = 5 * time.Second

// Service probes the init system for the named service. On platforms
// without a recognized service manager the service is reported as not
// installed, which the rules treat as informational.
func (*Host) Service(ctx context.Context, name string) (bool, string, error) {
	ctx, cancel := context.WithTimeout(ctx, serviceProbeTimeout)
	defer cancel()

	switch runtime.GOOS {
	case "linux":
		return systemdService(ctx, name)
	case "darwin":
		return launchdService(ctx, name)
	default:
		return false, "", nil
	}
}

func systemdService(ctx context.Context, name string) (bool, string, error) {
	cmd := exec.CommandContext(ctx, "systemctl", "show", "-p", "LoadState,ActiveState", name)
	output, err := cmd.Output()
	if err != nil {
		return false, "", fmt.Errorf("systemctl show %s: %w", name, err)
	}

	loadState, activeState := "", ""
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "LoadState":
			loadState = value
		case "ActiveState":
			activeState = value
		}
	}

	if loadState == "not-found" || loadState == "" {
		return false, "", nil
	}
	if activeState == "active" {
		return true, "Running", nil
	}
	return true, "Stopped", nil
}

func launchdService(ctx context.Context, name string) (bool, string, error) {
	cmd := exec.CommandContext(ctx, "launchctl", "print", "system/"+name)
	output, err := cmd.Output()
	if err != nil {
		// launchctl exits non-zero when the service is not loaded.
		return false, "", nil
	}
	if strings.Contains(string(output), "state = running") {
		return true, "Running", nil
	}
	return true, "Stopped", nil
}
