package validation

import (
	"bytes"
	"unicode/utf8"
)

// Text returns doc as a string when it is decoded plain text.
// Invalid UTF-8 or NUL bytes mark a binary document, which the core does not decode.
func Text(doc []byte, field string) (string, error) {
	if !utf8.Valid(doc) {
		return "", &InvalidInputError{Field: field, Message: "document is not valid UTF-8 text"}
	}
	if bytes.IndexByte(doc, 0) >= 0 {
		return "", &InvalidInputError{Field: field, Message: "document contains binary data"}
	}
	return string(doc), nil
}
