// Package remedian defines the shared result model for detection and
// remediation runs.
package remedian

import "time"

// Task statuses recorded in CompletedTasks.
const (
	StatusSuccess = "Success"
)

// Exit codes consumed by the calling orchestrator. These two values are
// the entire contract: 0 = compliant / remediated, 1 = needs remediation
// or a critical error occurred.
const (
	ExitCompliant    = 0
	ExitNonCompliant = 1
)

// TaskRecord is one completed remediation task.
type TaskRecord struct {
	Task   string    `json:"task"`
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// ItemError is a non-fatal, per-object failure. It never affects the
// run's pass/fail verdict.
type ItemError struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// Result accumulates outcomes across one remediation run. It is created
// at process start, mutated only by the three recorders below, and
// serialized exactly once at process end. The run is single-threaded;
// insertion order is preserved and nothing is ever removed.
type Result struct {
	CompletedTasks  []TaskRecord `json:"completedTasks"`
	FileLevelErrors []ItemError  `json:"fileLevelErrors"`
	CriticalErrors  []string     `json:"criticalErrors"`

	now func() time.Time
}

// NewResult returns an empty Result. Slices are allocated so an empty
// run serializes as [] rather than null.
func NewResult() *Result {
	return &Result{
		CompletedTasks:  []TaskRecord{},
		FileLevelErrors: []ItemError{},
		CriticalErrors:  []string{},
		now:             time.Now,
	}
}

// RecordSuccess appends a completed task. Recorders never fail.
func (r *Result) RecordSuccess(task string) {
	r.CompletedTasks = append(r.CompletedTasks, TaskRecord{
		Task:   task,
		Status: StatusSuccess,
		Time:   r.timestamp(),
	})
}

// RecordItemError appends a per-object failure for item.
func (r *Result) RecordItemError(item, message string) {
	r.FileLevelErrors = append(r.FileLevelErrors, ItemError{Item: item, Error: message})
}

// RecordCritical appends a failure serious enough to mark the whole run
// as failed.
func (r *Result) RecordCritical(message string) {
	r.CriticalErrors = append(r.CriticalErrors, message)
}

// Succeeded reports whether the run passed: no critical errors.
// File-level errors never flip the verdict.
func (r *Result) Succeeded() bool {
	return len(r.CriticalErrors) == 0
}

func (r *Result) timestamp() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// DetectionVerdict is the outcome of a detection pass: whether the
// machine needs remediation and why. Computed once, never mutated after
// the rules have run.
type DetectionVerdict struct {
	NeedsRemediation bool     `json:"needsRemediation"`
	Reasons          []string `json:"reasons"`
}

// Flag marks the verdict as needing remediation with the given reason.
func (v *DetectionVerdict) Flag(reason string) {
	v.NeedsRemediation = true
	v.Reasons = append(v.Reasons, reason)
}

// Observe appends an informational reason without changing the verdict.
func (v *DetectionVerdict) Observe(reason string) {
	v.Reasons = append(v.Reasons, reason)
}

// Merge folds another verdict into this one. Rules are additive: any
// flagged contribution flags the combined verdict.
func (v *DetectionVerdict) Merge(other DetectionVerdict) {
	if other.NeedsRemediation {
		v.NeedsRemediation = true
	}
	v.Reasons = append(v.Reasons, other.Reasons...)
}

// ExitCode maps the final aggregated state to a process exit code.
//
// Detection runs (result == nil) signal compliance through the verdict
// alone. Remediation runs are judged only by critical errors: a machine
// that needed remediation and was fixed cleanly exits 0.
func ExitCode(verdict DetectionVerdict, result *Result) int {
	if result != nil {
		if !result.Succeeded() {
			return ExitNonCompliant
		}
		return ExitCompliant
	}
	if verdict.NeedsRemediation {
		return ExitNonCompliant
	}
	return ExitCompliant
}
