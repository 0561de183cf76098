package rules

import (
	"fmt"

	"remedian/internal/remedian"
)

// ServiceRunning is the healthy service state as reported by the probe.
const ServiceRunning = "Running"

// ServiceHealth flags a service that exists but is not running. A
// service that is not installed at all is informational, not a failure.
func ServiceHealth(name string, found bool, state string) remedian.DetectionVerdict {
	var v remedian.DetectionVerdict

	if !found {
		v.Observe(fmt.Sprintf("service %s is not installed", name))
		return v
	}
	if state != ServiceRunning {
		v.Flag(fmt.Sprintf("service %s is %s, expected %s", name, state, ServiceRunning))
		return v
	}
	v.Observe(fmt.Sprintf("service %s is running", name))
	return v
}
