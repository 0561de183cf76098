//go:build windows

package probe

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yusufpapurcu/wmi"

	"remedian/internal/rules"
)

// Win32_PrintJob mirrors the WMI class of the same name. Nullable
// columns are pointers so WMI NULLs unmarshal cleanly.
type Win32_PrintJob struct {
	JobId         uint32
	Document      *string
	TimeSubmitted *time.Time
}

// Win32_PnPSignedDriver mirrors the WMI class of the same name.
type Win32_PnPSignedDriver struct {
	DeviceName    *string
	DriverVersion *string
	DeviceClass   *string
	DriverDate    *time.Time
	IsSigned      bool
}

// PrintJobs lists the jobs currently queued on the local spooler.
func (*Host) PrintJobs(_ context.Context) ([]rules.PrintJob, error) {
	var raw []Win32_PrintJob
	query := "SELECT JobId, Document, TimeSubmitted FROM Win32_PrintJob"
	if err := wmi.Query(query, &raw); err != nil {
		return nil, fmt.Errorf("query Win32_PrintJob: %w", err)
	}

	jobs := make([]rules.PrintJob, 0, len(raw))
	for _, j := range raw {
		job := rules.PrintJob{ID: strconv.FormatUint(uint64(j.JobId), 10)}
		if j.Document != nil {
			job.Document = *j.Document
		}
		if j.TimeSubmitted != nil {
			job.Submitted = *j.TimeSubmitted
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Drivers lists the installed PnP drivers.
func (*Host) Drivers(_ context.Context) ([]rules.Driver, error) {
	var raw []Win32_PnPSignedDriver
	query := "SELECT DeviceName, DriverVersion, DeviceClass, DriverDate, IsSigned FROM Win32_PnPSignedDriver"
	if err := wmi.Query(query, &raw); err != nil {
		return nil, fmt.Errorf("query Win32_PnPSignedDriver: %w", err)
	}

	drivers := make([]rules.Driver, 0, len(raw))
	for _, d := range raw {
		driver := rules.Driver{Signed: d.IsSigned}
		if d.DeviceName != nil {
			driver.Device = *d.DeviceName
		}
		if d.DriverVersion != nil {
			driver.Version = *d.DriverVersion
		}
		if d.DeviceClass != nil {
			driver.Class = *d.DeviceClass
		}
		if d.DriverDate != nil {
			driver.InstallDate = *d.DriverDate
		}
		drivers = append(drivers, driver)
	}
	return drivers, nil
}
