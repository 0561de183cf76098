package remedy

import (
	"context"
	"fmt"
	"log"

	"remedian/internal/remedian"
	"remedian/internal/rules"
)

// UpdateOutcome is the result of one driver update attempt.
type UpdateOutcome struct {
	Device  string
	Applied bool
	Detail  string
}

// Updater searches for, downloads, and installs an update for a single
// driver identity. The host platform's update machinery (Windows Update
// on Windows) lives behind this interface and stays out of the core.
type Updater interface {
	Update(ctx context.Context, driver rules.Driver) (UpdateOutcome, error)
}

// UnsupportedUpdater is used when no platform updater is available. It
// reports every driver as not updatable, which is informational.
type UnsupportedUpdater struct{}

// Update reports that driver updates are not supported on this host.
func (UnsupportedUpdater) Update(_ context.Context, driver rules.Driver) (UpdateOutcome, error) {
	return UpdateOutcome{
		Device: driver.Device,
		Detail: "driver updates are not supported on this host",
	}, nil
}

// UpdateDrivers attempts an update for each stale driver. A failed
// attempt is a file-level error for that driver; the pass continues
// with the rest.
func UpdateDrivers(ctx context.Context, updater Updater, stale []rules.Driver, rec *remedian.Result) {
	for _, driver := range stale {
		outcome, err := updater.Update(ctx, driver)
		if err != nil {
			rec.RecordItemError(driver.Device, fmt.Sprintf("driver update failed: %v", err))
			continue
		}
		if outcome.Applied {
			rec.RecordSuccess(fmt.Sprintf("updated driver %s: %s", outcome.Device, outcome.Detail))
			continue
		}
		log.Printf("[INFO] Driver %s not updated: %s", outcome.Device, outcome.Detail)
	}
}
