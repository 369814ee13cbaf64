package profile

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed record.schema.json
var recordSchemaJSON []byte

const recordSchemaURL = "schema://record.json"

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(recordSchemaJSON))
		if err != nil {
			recordSchemaErr = fmt.Errorf("parse record schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, def); err != nil {
			recordSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		recordSchema, recordSchemaErr = c.Compile(recordSchemaURL)
	})
	return recordSchema, recordSchemaErr
}

// validateRecord checks raw against the record schema. Failures wrap
// ErrCorruptRecord.
func validateRecord(raw []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", ErrCorruptRecord, err)
	}

	schema, err := compiledRecordSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return nil
}
