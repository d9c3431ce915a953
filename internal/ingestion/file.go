package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/campus-match/internal/fetch"
)

// Format identifies the encoding of an ingested document
type Format string

// Supported document formats
const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// formatsByExtension maps file extensions to document formats
var formatsByExtension = map[string]Format{
	".txt":  FormatText,
	".text": FormatText,
	".md":   FormatText,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".pdf":  FormatPDF,
}

// DetectFormat returns the format for a file path, or false if unsupported
func DetectFormat(path string) (Format, bool) {
	format, ok := formatsByExtension[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// IsSupported reports whether a file path has an ingestible extension
func IsSupported(path string) bool {
	_, ok := DetectFormat(path)
	return ok
}

// IngestFromFile reads a document, converts it to text, cleans it, and returns cleaned text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return "", nil, &UnsupportedFormatError{Path: path}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleanedText, err := IngestBytes(content, format)
	if err != nil {
		return "", nil, fmt.Errorf("failed to ingest %s: %w", path, err)
	}

	return cleanedText, NewMetadata(cleanedText, path, format), nil
}

// IngestBytes converts raw document bytes of a known format to cleaned text
func IngestBytes(content []byte, format Format) (string, error) {
	var text string
	switch format {
	case FormatPDF:
		decoded, err := ExtractPDFText(content)
		if err != nil {
			return "", err
		}
		text = decoded
	case FormatHTML:
		decoded, err := fetch.ExtractMainText(string(content), fetch.DocumentSelectors())
		if err != nil {
			return "", &DecodeError{Format: FormatHTML, Message: "failed to parse HTML", Cause: err}
		}
		text = decoded
	default:
		if !utf8.Valid(content) {
			return "", &DecodeError{Format: FormatText, Message: "document is not valid UTF-8 text"}
		}
		text = string(content)
	}

	return CleanText(text), nil
}
