package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestFromURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Careers home</nav>
			<div class="job-description">
				<h2>Graduate Engineer</h2>
				<p>Experience with Java and AWS.</p>
			</div>
		</body></html>`))
	}))
	defer server.Close()

	text, metadata, err := IngestFromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Graduate Engineer\nExperience with Java and AWS.", text)
	assert.Equal(t, server.URL, metadata.Source)
	assert.Equal(t, FormatHTML, metadata.Format)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := IngestFromURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, _, err := IngestFromURL(context.Background(), "://bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
}
