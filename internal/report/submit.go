package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"remedian/internal/remedian"
)

const (
	// HTTP client timeout.
	httpTimeout = 30 * time.Second
	// Maximum request body size; a report beyond this is misconfigured.
	maxBodySize = 1 << 20
	// Maximum response body captured for diagnostics.
	maxResponseBody = 4 * 1024
)

// The item name under which submission failures are recorded. Remote
// reporting is deliberately demoted to a file-level error so it can
// never flip a successful local remediation into a failure.
const submitItem = "report-api"

// Submitter posts report envelopes to the configured endpoint.
type Submitter struct {
	client *http.Client
	url    string
}

// NewSubmitter returns a Submitter for the given endpoint URL. An empty
// URL disables submission.
func NewSubmitter(url string) *Submitter {
	return &Submitter{
		client: &http.Client{Timeout: httpTimeout},
		url:    strings.TrimSuffix(url, "/"),
	}
}

// Submit POSTs the already-serialized envelope in a single attempt, no
// retries. Every failure path is captured through the recorder with
// whatever diagnostic detail is available; Submit never returns an
// error and never panics. The caller serializes the report exactly once
// and hands the same bytes to both PersistLocally and Submit.
func (s *Submitter) Submit(ctx context.Context, data []byte, rec *remedian.Result) {
	if s.url == "" {
		log.Print("[INFO] No reporting endpoint configured, skipping submission")
		return
	}

	if len(data) > maxBodySize {
		rec.RecordItemError(submitItem, fmt.Sprintf("report body is %d bytes, limit %d", len(data), maxBodySize))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(data))
	if err != nil {
		rec.RecordItemError(submitItem, fmt.Sprintf("create request: %v", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		rec.RecordItemError(submitItem, fmt.Sprintf("POST %s: %v", s.url, err))
		return
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] Error closing response body: %v", err)
		}
	}()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rec.RecordItemError(submitItem, fmt.Sprintf("endpoint returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body))))
		return
	}

	log.Printf("[INFO] Report submitted to %s (status %d)", s.url, resp.StatusCode)
	rec.RecordSuccess("submitted report to endpoint")
}
