package extraction

import (
	"errors"
	"fmt"
)

// Sentinel failures of the extraction request. Both abort the pipeline.
var (
	// ErrEmptyResponse means the model returned no text and no explicit
	// safety signal. Usually an unreadable document or one with no
	// financial content.
	ErrEmptyResponse = errors.New("empty response from model: the document might be unreadable or not contain financial data")

	// ErrSafetyBlocked means the model's finish reason signalled a
	// content-safety rejection.
	ErrSafetyBlocked = errors.New("request blocked by model safety settings")
)

// DocumentReadError means the source document could not be read to
// completion during encoding.
type DocumentReadError struct {
	Name string
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("failed to read document %q: %v", e.Name, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// MalformedJSONError means the response text (fenced or raw) did not
// parse as JSON. Raw carries the exact text that failed, for debugging.
type MalformedJSONError struct {
	Raw string
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("could not parse the financial analysis from the model response: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

// IncompleteSchemaError means the JSON parsed but a required field class
// was missing or mis-shaped. Field names the offending field in
// companyName / financialsLocal.revenue style; Raw carries the text that
// failed validation.
type IncompleteSchemaError struct {
	Field string
	Raw   string
}

func (e *IncompleteSchemaError) Error() string {
	return fmt.Sprintf("invalid or incomplete JSON structure in model response: missing or invalid %s", e.Field)
}
