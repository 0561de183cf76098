// Package remedy performs the corrective actions: restarting services,
// clearing caches, resetting the print queue, and removing stale
// profiles. Every action reports its outcome through the result
// aggregator and never returns an error to the caller.
package remedy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

const (
	// Host command execution timeout.
	commandTimeout = 30 * time.Second
	// Maximum captured output size to prevent memory exhaustion.
	maxOutputSize = 10 * 1024
)

type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner is the execution seam for actions that shell out, so
// tests can script command outcomes.
type commandRunner func(ctx context.Context, name string, args ...string) commandResult

// runCommand executes a host command and captures stdout/stderr
// separately. Commands are fixed argv lists assembled by this package,
// never shell strings.
func runCommand(ctx context.Context, name string, args ...string) commandResult {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	result := commandResult{
		Stdout: limitOutput(stdoutBuf.Bytes(), maxOutputSize),
		Stderr: limitOutput(stderrBuf.Bytes(), maxOutputSize),
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.Stderr = fmt.Sprintf("command timed out after %v", commandTimeout)
			result.ExitCode = -1
			log.Printf("[WARN] Command timed out: %s %s", name, strings.Join(args, " "))
			return result
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			result.Stderr += fmt.Sprintf("\ncommand error: %v", err)
		}
	}

	return result
}

// failureDetail condenses a failed command result into one line for a
// recorded error.
func (r commandResult) failureDetail() string {
	detail := strings.TrimSpace(r.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(r.Stdout)
	}
	if detail == "" {
		detail = "no output"
	}
	return fmt.Sprintf("exit %d: %s", r.ExitCode, detail)
}

func limitOutput(data []byte, maxSize int) string {
	if len(data) > maxSize {
		return string(data[:maxSize]) + "\n[Output truncated]..."
	}
	return string(data)
}
