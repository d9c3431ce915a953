package db

import "fmt"

// NotFoundError is returned when a lookup by ID matches no row
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// DecodeError reports a stored JSON column that could not be decoded
type DecodeError struct {
	Column string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Column, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
