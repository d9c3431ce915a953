package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/campus-match/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestFromURL fetches a job posting page, extracts its main text using the
// selectors of the detected job board, cleans it, and returns it with metadata.
func IngestFromURL(ctx context.Context, urlStr string) (string, *Metadata, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	platform := fetch.DetectPlatform(urlStr)
	textContent, err := fetch.ExtractMainText(result.HTML, fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleanedText := CleanText(textContent)
	return cleanedText, NewMetadata(cleanedText, urlStr, FormatHTML), nil
}
