package remedy

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"remedian/internal/probe"
	"remedian/internal/remedian"
	"remedian/internal/rules"
)

const (
	// Status polling after a restart.
	restartPollAttempts = 10
	restartPollDelay    = 1 * time.Second
	restartPollMaxDelay = 5 * time.Second
)

// ServiceRestarter restarts host services and confirms they come back
// up by polling the probe.
type ServiceRestarter struct {
	Probe probe.System

	// run overrides command execution; nil means the real host.
	run commandRunner
}

func (s *ServiceRestarter) exec(ctx context.Context, name string, args ...string) commandResult {
	if s.run != nil {
		return s.run(ctx, name, args...)
	}
	return runCommand(ctx, name, args...)
}

// Restart stops and starts the named service, then polls until the
// probe reports it running. A restart that cannot be confirmed is a
// critical error: the machine stays out of compliance.
func (s *ServiceRestarter) Restart(ctx context.Context, name string, rec *remedian.Result) {
	if err := s.Stop(ctx, name); err != nil {
		// A service that is already stopped still needs starting.
		log.Printf("[WARN] Stop %s: %v", name, err)
	}
	if err := s.Start(ctx, name); err != nil {
		rec.RecordCritical(fmt.Sprintf("start service %s: %v", name, err))
		return
	}

	err := retry.Do(func() error {
		found, state, err := s.Probe.Service(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("service %s not found after start", name)
		}
		if state != rules.ServiceRunning {
			return fmt.Errorf("service %s is %s", name, state)
		}
		return nil
	}, retry.Attempts(restartPollAttempts), retry.Delay(restartPollDelay), retry.MaxDelay(restartPollMaxDelay))
	if err != nil {
		rec.RecordCritical(fmt.Sprintf("service %s did not reach running state: %v", name, err))
		return
	}

	log.Printf("[INFO] Service %s restarted", name)
	rec.RecordSuccess(fmt.Sprintf("restarted service %s", name))
}

// Stop issues a stop command for the named service.
func (s *ServiceRestarter) Stop(ctx context.Context, name string) error {
	var result commandResult
	switch runtime.GOOS {
	case "windows":
		result = s.exec(ctx, "net", "stop", name)
	case "darwin":
		result = s.exec(ctx, "launchctl", "stop", name)
	default:
		result = s.exec(ctx, "systemctl", "stop", name)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("stop %s: %s", name, result.failureDetail())
	}
	return nil
}

// Start issues a start command for the named service.
func (s *ServiceRestarter) Start(ctx context.Context, name string) error {
	var result commandResult
	switch runtime.GOOS {
	case "windows":
		result = s.exec(ctx, "net", "start", name)
	case "darwin":
		result = s.exec(ctx, "launchctl", "start", name)
	default:
		result = s.exec(ctx, "systemctl", "start", name)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("start %s: %s", name, result.failureDetail())
	}
	return nil
}
