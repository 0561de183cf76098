//go:build !windows

package probe

import (
	"context"

	"remedian/internal/rules"
)

// PrintJobs has no portable answer outside Windows; an empty queue is
// the informational equivalent of the spooler being absent.
func (*Host) PrintJobs(_ context.Context) ([]rules.PrintJob, error) {
	return nil, nil
}

// Drivers reports no inspectable drivers outside Windows.
func (*Host) Drivers(_ context.Context) ([]rules.Driver, error) {
	return nil, nil
}
