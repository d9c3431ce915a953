package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/types"
)

// Section line thresholds
const (
	minSectionLineLength  = 20
	minFallbackLineLength = 30
)

// sectionSpec describes how one résumé section is located
type sectionSpec struct {
	headers  []*regexp.Regexp
	keywords *regexp.Regexp
}

// headerLine builds a pattern matching a line that is the given header,
// optionally followed by a colon and inline content, which is captured.
func headerLine(names string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:` + names + `)\s*(?::\s*(.*))?$`)
}

var (
	projectSection = sectionSpec{
		headers: []*regexp.Regexp{
			headerLine(`academic\s+projects|personal\s+projects|key\s+projects|major\s+projects`),
			headerLine(`projects?`),
			headerLine(`project\s+work|project\s+experience`),
		},
		keywords: regexp.MustCompile(`(?i)\b(?:built|developed|created|implemented|designed|project|application|website|platform|system)\b`),
	}

	experienceSection = sectionSpec{
		headers: []*regexp.Regexp{
			headerLine(`work\s+experience|professional\s+experience|employment\s+history|work\s+history`),
			headerLine(`experience`),
			headerLine(`internships?|internship\s+experience`),
		},
		keywords: regexp.MustCompile(`(?i)\b(?:intern|internship|worked|working|employed|engineer|developer|analyst|company|responsible|collaborated|led|managed)\b`),
	}

	// knownSection matches any line that is itself a section header, ending the current block
	knownSection = regexp.MustCompile(`(?i)^(?:education|academic\s+details|skills|technical\s+skills|key\s+skills|` +
		`projects?|academic\s+projects|personal\s+projects|key\s+projects|major\s+projects|project\s+work|project\s+experience|` +
		`experience|work\s+experience|professional\s+experience|employment\s+history|work\s+history|internships?|internship\s+experience|` +
		`certifications?|achievements|awards|publications|summary|objective|career\s+objective|profile|contact|` +
		`languages|interests|hobbies|activities|extra[\s\-]*curricular\s+activities|references|declaration|` +
		`positions\s+of\s+responsibility|leadership|coursework|relevant\s+coursework)\s*:?$`)

	bulletMarker = regexp.MustCompile(`^(?:[-*+>]|\d{1,2}[.)])\s+`)
	internPhrase = regexp.MustCompile(`(?i)\bintern(?:s|ship|ships|ed)?\b`)
)

// ExtractProjects returns up to five project descriptions in document order
func ExtractProjects(text string) []string {
	return extractSection(text, projectSection)
}

// ExtractExperience returns up to five experience entries in document order
func ExtractExperience(text string) []string {
	return extractSection(text, experienceSection)
}

// HasInternship reports whether the document mentions an internship anywhere,
// independently of whether an experience section was found.
func HasInternship(text string) bool {
	return internPhrase.MatchString(text)
}

// extractSection tries each header in order and falls back to keyword scanning
func extractSection(text string, spec sectionSpec) []string {
	cleaned := ingestion.CleanText(text)
	if cleaned == "" {
		return []string{}
	}
	lines := strings.Split(cleaned, "\n")

	for _, header := range spec.headers {
		block, ok := findBlock(lines, header)
		if !ok {
			continue
		}
		entries := keepLongEntries(splitEntries(block), minSectionLineLength)
		if len(entries) > 0 {
			return entries
		}
	}

	return scanKeywordLines(lines, spec.keywords)
}

// findBlock returns the lines following the first header match,
// up to the next header line or the end of the text.
func findBlock(lines []string, header *regexp.Regexp) ([]string, bool) {
	for i, line := range lines {
		match := header.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		var block []string
		if inline := strings.TrimSpace(match[1]); inline != "" {
			block = append(block, inline)
		}
		for _, next := range lines[i+1:] {
			if isHeaderLine(next) {
				break
			}
			block = append(block, next)
		}
		return block, true
	}
	return nil, false
}

// isHeaderLine reports whether a line starts a new section:
// a known section name, or a short line written entirely in capitals.
func isHeaderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if knownSection.MatchString(trimmed) {
		return true
	}
	return isCapitalizedHeader(trimmed)
}

func isCapitalizedHeader(line string) bool {
	line = strings.TrimSuffix(line, ":")
	if utf8.RuneCountInString(line) < 3 || utf8.RuneCountInString(line) > 40 {
		return false
	}
	letters := 0
	for _, r := range line {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsLetter(r):
			letters++
		case unicode.IsSpace(r), r == '&', r == '/', r == '-':
		default:
			return false
		}
	}
	return letters >= 3
}

// splitEntries groups block lines into entries.
// A bullet line starts a new entry, a blank line ends one and other lines continue the current entry.
func splitEntries(block []string) []string {
	var entries []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			entries = append(entries, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range block {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if loc := bulletMarker.FindStringIndex(trimmed); loc != nil {
			flush()
			trimmed = strings.TrimSpace(trimmed[loc[1]:])
			if trimmed == "" {
				continue
			}
		}
		current = append(current, trimmed)
	}
	flush()

	return entries
}

// keepLongEntries drops entries shorter than minLength characters and keeps at most five
func keepLongEntries(entries []string, minLength int) []string {
	kept := make([]string, 0, types.MaxProfileEntries)
	for _, entry := range entries {
		if utf8.RuneCountInString(entry) < minLength {
			continue
		}
		kept = append(kept, entry)
		if len(kept) == types.MaxProfileEntries {
			break
		}
	}
	return kept
}

// scanKeywordLines is the fallback when no section header is found:
// any line containing a keyword and longer than the fallback threshold counts as weak evidence.
func scanKeywordLines(lines []string, keywords *regexp.Regexp) []string {
	kept := make([]string, 0, types.MaxProfileEntries)
	for _, line := range lines {
		trimmed := strings.TrimSpace(bulletMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		if utf8.RuneCountInString(trimmed) <= minFallbackLineLength || !keywords.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
		if len(kept) == types.MaxProfileEntries {
			break
		}
	}
	return kept
}
