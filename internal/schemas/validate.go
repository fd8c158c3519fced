// Package schemas provides JSON Schema validation for input documents.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaError reports a schema that could not be compiled, or a document
// gojsonschema could not read at all.
type SchemaError struct {
	Schema string
	Cause  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s unusable: %v", e.Schema, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateJSON checks raw JSON bytes against the named schema.
func ValidateJSON(schemaName, schemaContent string, data []byte) error {
	return validate(schemaName, gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewBytesLoader(data))
}

// ValidateDocument checks an already decoded document (maps, slices and
// scalars, as a YAML decoder produces) against the named schema.
func ValidateDocument(schemaName, schemaContent string, document any) error {
	return validate(schemaName, gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewGoLoader(document))
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaError{Schema: schemaName, Cause: err}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
