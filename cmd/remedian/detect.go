package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"remedian/internal/remedian"
	"remedian/internal/report"
)

var detectCmd = &cobra.Command{
	Use:   "detect <check>",
	Short: "Run a detection and signal compliance via the exit code",
	Args:  cobra.ExactArgs(1),
	Run:   runDetect,
}

func runDetect(_ *cobra.Command, args []string) {
	d, err := loadDeps()
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	c, ok := findCheck(args[0])
	if !ok {
		log.Fatalf("[ERROR] Unknown check %q (see 'remedian list')", args[0])
	}

	ctx := context.Background()
	verdict := c.Detect(ctx, d)

	for _, reason := range verdict.Reasons {
		log.Printf("[INFO] %s", reason)
	}
	if verdict.NeedsRemediation {
		log.Printf("[WARN] Check %s: machine needs remediation", c.Name)
	} else {
		log.Printf("[INFO] Check %s: machine is compliant", c.Name)
	}

	persistVerdict(c.Name, verdict, d)

	os.Exit(remedian.ExitCode(verdict, nil))
}

// persistVerdict writes the detection artifact for diagnostics. The
// exit code of a detection comes from the verdict alone, so persistence
// problems are logged but change nothing.
func persistVerdict(name string, verdict remedian.DetectionVerdict, d *deps) {
	artifact, err := json.Marshal(struct {
		Check   string                    `json:"check"`
		Verdict remedian.DetectionVerdict `json:"verdict"`
	}{Check: name, Verdict: verdict})
	if err != nil {
		log.Printf("[WARN] Could not serialize detection artifact: %v", err)
		return
	}

	scratch := remedian.NewResult()
	report.PersistLocally(artifact, name+"-detection.json", d.cfg.Output.Preferred, d.cfg.Output.Fallback, scratch)
	for _, msg := range scratch.CriticalErrors {
		log.Printf("[WARN] %s", msg)
	}
}
