package rules

import (
	"fmt"
	"time"

	"remedian/internal/remedian"
)

// PrintJob is the queue state a stuck-job rule needs: identity for the
// reason text plus the submission time.
type PrintJob struct {
	ID        string
	Document  string
	Submitted time.Time
}

// StuckPrintJobs flags the queue when any job has been waiting longer
// than maxAge. An empty queue is informational, as is a job whose
// submission time is unknown: without a timestamp its age cannot be
// graded.
func StuckPrintJobs(jobs []PrintJob, now time.Time, maxAge time.Duration) remedian.DetectionVerdict {
	var v remedian.DetectionVerdict

	stuck := 0
	for _, job := range jobs {
		if job.Submitted.IsZero() {
			v.Observe(fmt.Sprintf("print job %s (%s) has no submission timestamp", job.ID, job.Document))
			continue
		}
		age := now.Sub(job.Submitted)
		if age > maxAge {
			stuck++
			v.Flag(fmt.Sprintf("print job %s (%s) has been queued for %s", job.ID, job.Document, age.Round(time.Minute)))
		}
	}
	if stuck == 0 {
		v.Observe(fmt.Sprintf("no print jobs older than %s in a queue of %d", maxAge, len(jobs)))
	}
	return v
}
