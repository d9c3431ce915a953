package ingestion

import "fmt"

// DecodeError represents a failure to turn a document into text
type DecodeError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error (%s): %s", e.Format, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError is returned for file extensions the ingester cannot read
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s", e.Path)
}
