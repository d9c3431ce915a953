package skills

import (
	"strings"
	"unicode"
)

// NormalizeSkillName normalizes a skill name to its canonical form.
// Vocabulary names and aliases resolve to the vocabulary spelling; other
// all-lowercase or all-uppercase single words get a leading capital.
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	if canonical, ok := jobVocabulary.Canonical(normalized); ok {
		return canonical
	}

	// Mixed case is kept as written
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		return normalized
	}

	if !strings.Contains(normalized, " ") {
		lower := strings.ToLower(normalized)
		// Short all-caps words are usually acronyms
		if normalized == strings.ToUpper(normalized) && len(normalized) <= 4 {
			return normalized
		}
		runes := []rune(lower)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	}

	return normalized
}

// Dedupe removes case-insensitive duplicates while keeping first-seen order
func Dedupe(names []string) []string {
	result := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, name)
	}
	return result
}
