// Package rules evaluates probed machine state against configured
// thresholds. Every rule is a pure function producing a
// DetectionVerdict contribution; rules are additive, so any flagged
// contribution marks the machine as needing remediation.
package rules

import "time"

// Default cutoffs shared by the rules. The config package resolves
// omitted configuration fields to these values; numeric thresholds that
// vary per deployment (disk percentage, cache bytes) have no built-in
// default and must come from configuration.
const (
	// MaxJobAge is how long a print job may sit in the queue before it
	// counts as stuck.
	MaxJobAge = time.Hour

	// DriverMaxAgeDays is the general driver staleness cutoff. The
	// boundary is strict: a driver aged exactly this many days is not
	// flagged.
	DriverMaxAgeDays = 730

	// PrinterDriverMaxAgeDays is the tighter cutoff applied to printer
	// class drivers.
	PrinterDriverMaxAgeDays = 365
)
