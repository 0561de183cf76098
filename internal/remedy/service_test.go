package remedy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"remedian/internal/remedian"
	"remedian/internal/rules"
)

// scriptedRunner records every issued command and fails the verbs it is
// told to. The verb (stop/start) is always the first argument on every
// platform.
type scriptedRunner struct {
	calls []string
	fail  map[string]bool
}

func (r *scriptedRunner) run(_ context.Context, _ string, args ...string) commandResult {
	verb := args[0]
	r.calls = append(r.calls, verb)
	if r.fail[verb] {
		return commandResult{ExitCode: 1, Stderr: "service control failure"}
	}
	return commandResult{}
}

func (r *scriptedRunner) issued(verb string) bool {
	for _, v := range r.calls {
		if v == verb {
			return true
		}
	}
	return false
}

type stubProbe struct {
	found bool
	state string
}

func (p *stubProbe) DiskUsage(context.Context, string) (uint64, uint64, error) { return 0, 0, nil }

func (p *stubProbe) Service(context.Context, string) (bool, string, error) {
	return p.found, p.state, nil
}
func (p *stubProbe) CacheSize(context.Context, []string) (int64, error) { return 0, nil }

func (p *stubProbe) PrintJobs(context.Context) ([]rules.PrintJob, error) { return nil, nil }

func (p *stubProbe) Drivers(context.Context) ([]rules.Driver, error) { return nil, nil }

func TestRestart(t *testing.T) {
	t.Run("confirmed restart is a success", func(t *testing.T) {
		runner := &scriptedRunner{}
		s := &ServiceRestarter{Probe: &stubProbe{found: true, state: rules.ServiceRunning}, run: runner.run}

		rec := remedian.NewResult()
		s.Restart(context.Background(), "Spooler", rec)

		if !rec.Succeeded() {
			t.Fatalf("Unexpected criticals: %v", rec.CriticalErrors)
		}
		if len(rec.CompletedTasks) != 1 {
			t.Errorf("CompletedTasks = %d, want 1", len(rec.CompletedTasks))
		}
		if !runner.issued("stop") || !runner.issued("start") {
			t.Errorf("Expected stop and start commands, got %v", runner.calls)
		}
	})

	t.Run("failed start is exactly one critical", func(t *testing.T) {
		runner := &scriptedRunner{fail: map[string]bool{"start": true}}
		s := &ServiceRestarter{Probe: &stubProbe{}, run: runner.run}

		rec := remedian.NewResult()
		s.Restart(context.Background(), "Spooler", rec)

		if len(rec.CriticalErrors) != 1 {
			t.Fatalf("CriticalErrors = %d, want 1: %v", len(rec.CriticalErrors), rec.CriticalErrors)
		}
		if len(rec.CompletedTasks) != 0 {
			t.Errorf("A failed restart must not record a completed task: %v", rec.CompletedTasks)
		}
	})
}

func TestResetPrintQueue(t *testing.T) {
	t.Run("purges queue and restarts spooler", func(t *testing.T) {
		spool := t.TempDir()
		mustWrite(t, filepath.Join(spool, "00001.SPL"))

		runner := &scriptedRunner{}
		s := &ServiceRestarter{run: runner.run}

		rec := remedian.NewResult()
		ResetPrintQueue(context.Background(), s, "Spooler", spool, rec)

		if !rec.Succeeded() || len(rec.CompletedTasks) != 1 {
			t.Errorf("Expected one completed task and no criticals: %v %v", rec.CompletedTasks, rec.CriticalErrors)
		}
		if _, err := os.Stat(filepath.Join(spool, "00001.SPL")); !os.IsNotExist(err) {
			t.Error("Spool file should be removed")
		}
		if !runner.issued("start") {
			t.Errorf("Spooler should be started again, got %v", runner.calls)
		}
	})

	t.Run("stop failure is critical and skips the purge", func(t *testing.T) {
		runner := &scriptedRunner{fail: map[string]bool{"stop": true}}
		s := &ServiceRestarter{run: runner.run}

		rec := remedian.NewResult()
		ResetPrintQueue(context.Background(), s, "Spooler", t.TempDir(), rec)

		if len(rec.CriticalErrors) != 1 {
			t.Fatalf("CriticalErrors = %d, want 1: %v", len(rec.CriticalErrors), rec.CriticalErrors)
		}
		if runner.issued("start") {
			t.Error("A spooler that never stopped must not be started again")
		}
	})

	t.Run("spooler restarted even when purge fails", func(t *testing.T) {
		// A spool path beneath a regular file cannot be enumerated.
		blocker := filepath.Join(t.TempDir(), "blocker")
		mustWrite(t, blocker)
		spool := filepath.Join(blocker, "PRINTERS")

		runner := &scriptedRunner{}
		s := &ServiceRestarter{run: runner.run}

		rec := remedian.NewResult()
		ResetPrintQueue(context.Background(), s, "Spooler", spool, rec)

		if len(rec.CriticalErrors) != 1 {
			t.Fatalf("CriticalErrors = %d, want 1: %v", len(rec.CriticalErrors), rec.CriticalErrors)
		}
		if len(rec.CompletedTasks) != 0 {
			t.Errorf("A failed purge must not record a completed task: %v", rec.CompletedTasks)
		}
		if !runner.issued("start") {
			t.Errorf("Spooler must be started again after a failed purge, got %v", runner.calls)
		}
	})
}
