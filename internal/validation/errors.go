// Package validation checks records and documents entering the extraction and scoring core.
package validation

import "fmt"

// InvalidInputError is returned when a public entry point receives input of the wrong type
// or shape, such as a binary document or a record whose fields have the wrong types.
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	prefix := "invalid input"
	if e.Field != "" {
		prefix = fmt.Sprintf("invalid input in %s", e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}
