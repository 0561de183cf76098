package rules

import (
	"fmt"
	"regexp"
	"time"

	"remedian/internal/remedian"
)

const hoursPerDay = 24

// Driver is the probed identity of one installed device driver.
type Driver struct {
	Device      string
	Version     string
	Class       string
	InstallDate time.Time
	Signed      bool
}

// IsPrinter reports whether the driver belongs to the printer device
// class and is subject to the tighter age cutoff.
func (d Driver) IsPrinter() bool {
	return d.Class == "Printer" || d.Class == "PrintQueue"
}

// AgeDays is the driver age in whole days at the given instant.
func (d Driver) AgeDays(now time.Time) int {
	if d.InstallDate.IsZero() {
		return 0
	}
	return int(now.Sub(d.InstallDate).Hours() / hoursPerDay)
}

// DriverPolicy carries the configurable cutoffs for the staleness rule.
// Zero cutoffs in the configuration are resolved to DriverMaxAgeDays
// and PrinterDriverMaxAgeDays before the policy is built.
type DriverPolicy struct {
	MaxAgeDays        int
	PrinterMaxAgeDays int
	KnownBad          []*regexp.Regexp
}

// StaleDrivers flags each driver that is older than the general cutoff,
// matches a known-bad pattern, or (printer class) is older than the
// printer cutoff. An unsigned driver is recorded as a reason but does
// not flag the verdict by itself.
func StaleDrivers(drivers []Driver, now time.Time, policy DriverPolicy) remedian.DetectionVerdict {
	var v remedian.DetectionVerdict

	for _, d := range drivers {
		if reason, stale := staleReason(d, now, policy); stale {
			v.Flag(reason)
		}
		if !d.Signed {
			v.Observe(fmt.Sprintf("driver %s (%s) is unsigned", d.Device, d.Version))
		}
	}

	if !v.NeedsRemediation {
		v.Observe(fmt.Sprintf("no stale drivers among %d inspected", len(drivers)))
	}
	return v
}

// FilterStale returns the drivers the staleness rule would flag, in
// input order. Remediation uses this to know which drivers to update.
func FilterStale(drivers []Driver, now time.Time, policy DriverPolicy) []Driver {
	var stale []Driver
	for _, d := range drivers {
		if _, flagged := staleReason(d, now, policy); flagged {
			stale = append(stale, d)
		}
	}
	return stale
}

func staleReason(d Driver, now time.Time, policy DriverPolicy) (string, bool) {
	age := d.AgeDays(now)

	switch {
	case age > policy.MaxAgeDays:
		return fmt.Sprintf("driver %s (%s) is %d days old (limit %d)", d.Device, d.Version, age, policy.MaxAgeDays), true
	case matchesKnownBad(d, policy.KnownBad):
		return fmt.Sprintf("driver %s (%s) matches a known-bad pattern", d.Device, d.Version), true
	case d.IsPrinter() && age > policy.PrinterMaxAgeDays:
		return fmt.Sprintf("printer driver %s (%s) is %d days old (limit %d)", d.Device, d.Version, age, policy.PrinterMaxAgeDays), true
	}
	return "", false
}

func matchesKnownBad(d Driver, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(d.Device) || p.MatchString(d.Version) {
			return true
		}
	}
	return false
}
