package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/campus-match/internal/skills"
	"github.com/jonathan/campus-match/internal/types"
)

// Phrase-extracted skill length window, in characters
const (
	minPhraseSkillLength = 3
	maxPhraseSkillLength = 29
)

var (
	// skillPhrasePatterns capture the clause that lists skills after a lead-in phrase
	skillPhrasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bexperience\s+(?:in|with)\s+([^.\n;:]+)`),
		regexp.MustCompile(`(?i)\brequired\s*:\s*([^.\n;]+)`),
		regexp.MustCompile(`(?i)\btechnologies\s*:\s*([^.\n;]+)`),
		regexp.MustCompile(`(?i)\b(?:proficien(?:t|cy)|familiar(?:ity)?)\s+(?:in|with)\s+([^.\n;:]+)`),
	}

	phraseSeparator = regexp.MustCompile(`(?i)\s*(?:,|/|\band\b|&)\s*`)
	leadingArticle  = regexp.MustCompile(`(?i)^(?:a|an|the|any|one|of)\s+`)

	// skillStoplist drops generic fragments that are not skills
	skillStoplist = []string{
		"years of", "year", "required", "experience", "preferred", "knowledge",
		"understanding", "ability", "skills", "strong", "good", "excellent",
		"working", "etc", "similar", "related", "tools", "technologies",
		"frameworks", "plus", "familiarity", "proficiency", "hands-on",
	}
)

// ExtractRequiredSkills combines vocabulary matches with skills named after
// lead-in phrases such as "experience with" or "technologies:".
// The result is deduplicated in first-seen order and capped at ten entries.
func ExtractRequiredSkills(text string) []string {
	found := skills.ExtractJob(text)

	for _, pattern := range skillPhrasePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, piece := range phraseSeparator.Split(match[1], -1) {
				if name, ok := phraseSkill(piece); ok {
					found = append(found, name)
				}
			}
		}
	}

	required := skills.Dedupe(found)
	if len(required) > types.MaxRequiredSkills {
		required = required[:types.MaxRequiredSkills]
	}
	return required
}

// phraseSkill cleans one clause fragment and reports whether it looks like a skill name
func phraseSkill(piece string) (string, bool) {
	piece = strings.Trim(strings.TrimSpace(piece), `"'()[]-*`)
	piece = strings.TrimSpace(leadingArticle.ReplaceAllString(piece, ""))

	length := utf8.RuneCountInString(piece)
	if length < minPhraseSkillLength || length > maxPhraseSkillLength {
		return "", false
	}

	lower := strings.ToLower(piece)
	for _, stop := range skillStoplist {
		if strings.Contains(lower, stop) {
			return "", false
		}
	}
	if strings.IndexFunc(piece, func(r rune) bool { return r >= '0' && r <= '9' }) == 0 {
		return "", false
	}

	return skills.NormalizeSkillName(piece), true
}
