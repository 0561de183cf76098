package report

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed envelope_schema.json
var envelopeSchema []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Validate checks serialized envelope bytes against the embedded
// envelope schema. It guards against configuration-driven values (group
// names, device ids) producing a malformed report.
func Validate(data []byte) error {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		schema, schemaErr = compiler.Compile(envelopeSchema)
	})
	if schemaErr != nil {
		return fmt.Errorf("compile envelope schema: %w", schemaErr)
	}

	result := schema.ValidateJSON(data)
	if !result.IsValid() {
		return fmt.Errorf("envelope schema validation failed: %v", result.Errors)
	}
	return nil
}
