// Package ingestion turns résumé and job description documents into clean plain text.
package ingestion

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	bulletGlyphs  = []string{"•", "·", "▪", "●", "◦", "‣", "\uf0b7", "➢", "✓"}
)

// Normalize lower-cases and trims a raw text block before pattern matching.
// Diacritics are folded so "Résumé" and "resume" compare equal.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.TrimSpace(cases.Lower(language.Und).String(folded))
}

// CleanText cleans document text while preserving line structure.
// Invalid UTF-8 is dropped, line endings become LF, runs of spaces collapse,
// bullet glyphs become "- " and more than one blank line in a row is squeezed.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ToValidUTF8(content, "")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a single line and rewrites leading bullet glyphs
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, glyph))
			break
		}
	}

	return whitespaceRun.ReplaceAllString(trimmed, " ")
}

// WordCount returns the number of whitespace-delimited words
func WordCount(text string) int {
	return len(strings.Fields(text))
}
