package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lower-cases and trims", "  CGPA: 8.5  ", "cgpa: 8.5"},
		{"folds diacritics", "Résumé", "resume"},
		{"keeps symbols", "C++ and C#", "c++ and c#"},
		{"expands ligatures", "ﬁnal year", "final year"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	input := "  Final Year B.Tech Students, CGPA ≥ 7.5 "
	once := Normalize(input)
	assert.Equal(t, once, Normalize(once))
}

func TestCleanText_RewritesBulletGlyphs(t *testing.T) {
	input := "Projects\n• Built a platform\n· Developed an API\n▪ Designed a schema"
	result := CleanText(input)

	assert.Equal(t, "Projects\n- Built a platform\n- Developed an API\n- Designed a schema", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t  multiple    spaces")
	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")
	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_DropsInvalidUTF8(t *testing.T) {
	result := CleanText("Python\xff\xfe Developer")
	assert.Equal(t, "Python Developer", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\n  \t  "))
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("  one two\nthree  "))
}

func TestIngestFromFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\n\r\nSkills:   Python, SQL\n"), 0644))

	text, metadata, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSkills: Python, SQL", text)
	require.NotNil(t, metadata)
	assert.Equal(t, path, metadata.Source)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, 5, metadata.WordCount)
	assert.Len(t, metadata.Hash, 64)
}

func TestIngestFromFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.html")
	html := `<html><body><nav>Menu</nav><h1>Data Analyst</h1><ul><li>Experience with SQL</li></ul></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))

	text, metadata, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst\n- Experience with SQL", text)
	assert.Equal(t, FormatHTML, metadata.Format)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_UnsupportedFormat(t *testing.T) {
	_, _, err := IngestFromFile("resume.docx")
	require.Error(t, err)

	var formatErr *UnsupportedFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestIngestFromFile_InvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0644))

	_, _, err := IngestFromFile(path)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, FormatPDF, decodeErr.Format)
}

func TestIngestBytes_BinaryText(t *testing.T) {
	_, err := IngestBytes([]byte{0xff, 0xfe, 0x00, 0x01}, FormatText)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestExtractPDFText_Empty(t *testing.T) {
	_, err := ExtractPDFText(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		ok       bool
	}{
		{"a.txt", FormatText, true},
		{"a.MD", FormatText, true},
		{"a.htm", FormatHTML, true},
		{"a.PDF", FormatPDF, true},
		{"a.docx", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, ok := DetectFormat(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, format)
			assert.Equal(t, tt.ok, IsSupported(tt.path))
		})
	}
}
