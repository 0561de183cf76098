package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"remedian/internal/archive"
	"remedian/internal/remedian"
	"remedian/internal/report"
)

var remediateCmd = &cobra.Command{
	Use:   "remediate <check>",
	Short: "Run a detection, fix what it finds, and report the results",
	Args:  cobra.ExactArgs(1),
	Run:   runRemediate,
}

func runRemediate(_ *cobra.Command, args []string) {
	d, err := loadDeps()
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	c, ok := findCheck(args[0])
	if !ok {
		log.Fatalf("[ERROR] Unknown check %q (see 'remedian list')", args[0])
	}

	ctx := context.Background()
	rec := remedian.NewResult()

	verdict := c.Detect(ctx, d)
	for _, reason := range verdict.Reasons {
		log.Printf("[INFO] %s", reason)
	}

	if verdict.NeedsRemediation {
		executeRemediation(ctx, c, d, rec)
	} else {
		log.Printf("[INFO] Check %s: machine is compliant, nothing to remediate", c.Name)
		rec.RecordSuccess(fmt.Sprintf("no remediation needed for %s", c.Name))
	}

	submitReport(ctx, c, d, rec)
	logSummary(c.Name, rec)

	os.Exit(remedian.ExitCode(verdict, rec))
}

// executeRemediation runs the check's actions behind a recover so a
// panicking action becomes a recorded critical error instead of an
// unhandled crash.
func executeRemediation(ctx context.Context, c check, d *deps, rec *remedian.Result) {
	defer func() {
		if r := recover(); r != nil {
			rec.RecordCritical(fmt.Sprintf("unhandled failure during %s remediation: %v", c.Name, r))
		}
	}()
	c.Remediate(ctx, d, rec)
}

// submitReport serializes the run result exactly once, persists it
// locally, submits it to the endpoint, and archives it when configured.
func submitReport(ctx context.Context, c check, d *deps, rec *remedian.Result) {
	env := report.NewEnvelope(d.cfg.Device, rec)
	data, err := report.Marshal(env)
	if err != nil {
		rec.RecordCritical(fmt.Sprintf("serialize report: %v", err))
		return
	}

	report.PersistLocally(data, c.Name+"-result.json", d.cfg.Output.Preferred, d.cfg.Output.Fallback, rec)

	if err := report.Validate(data); err != nil {
		rec.RecordItemError("report-api", err.Error())
		return
	}
	report.NewSubmitter(d.cfg.Endpoint).Submit(ctx, data, rec)

	archiveReport(ctx, c, d, env.IDGroup, data, rec)
}

func archiveReport(ctx context.Context, c check, d *deps, group string, data []byte, rec *remedian.Result) {
	if d.cfg.Archive == nil {
		return
	}
	uploader, err := archive.New(*d.cfg.Archive)
	if err != nil {
		rec.RecordItemError("archive", err.Error())
		return
	}
	name := fmt.Sprintf("%s/%s-%s.json", group, c.Name, time.Now().Format("20060102-150405"))
	if err := uploader.Upload(ctx, name, data); err != nil {
		rec.RecordItemError("archive", err.Error())
		return
	}
	log.Printf("[INFO] Report archived as %s", name)
}

func logSummary(name string, rec *remedian.Result) {
	log.Printf("[INFO] Check %s finished: %d tasks completed, %d item errors, %d critical errors",
		name, len(rec.CompletedTasks), len(rec.FileLevelErrors), len(rec.CriticalErrors))
	for _, e := range rec.FileLevelErrors {
		log.Printf("[WARN] %s: %s", e.Item, e.Error)
	}
	for _, msg := range rec.CriticalErrors {
		log.Printf("[ERROR] %s", msg)
	}
}
