// Package report serializes, persists, and submits the run report. All
// failure paths here are recorded through the result aggregator; nothing
// in this package returns an error to the top level.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"

	"remedian/internal/config"
	"remedian/internal/remedian"
)

// Envelope is the JSON structure submitted to the reporting endpoint.
type Envelope struct {
	IDGroup           string           `json:"id_group"`
	Status            bool             `json:"status"`
	ActionRemediation *remedian.Result `json:"action_remediation"`
	IDDevice          int              `json:"id_device"`
}

// NewEnvelope wraps a run result for submission. Status reflects the
// run verdict: true when no critical errors were recorded. A device
// with no configured group reports under a generated timestamped name.
func NewEnvelope(device config.Device, result *remedian.Result) Envelope {
	group := device.IDGroup
	if group == "" {
		group = "maintenance-" + time.Now().Format("20060102-150405")
	}
	return Envelope{
		IDGroup:           group,
		Status:            result.Succeeded(),
		ActionRemediation: result,
		IDDevice:          device.IDDevice,
	}
}

// Marshal serializes the envelope to canonical JSON (RFC 8785): UTF-8,
// no BOM, deterministic key order. The same result always produces the
// same bytes.
func Marshal(env Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return nil, fmt.Errorf("canonicalize envelope: %w", err)
	}
	return canonical, nil
}
