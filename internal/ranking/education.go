package ranking

import (
	"strings"
	"unicode"

	"github.com/jonathan/campus-match/internal/types"
)

// educationStopwords are ignored when comparing degree labels
var educationStopwords = map[string]bool{
	"of": true, "in": true, "and": true, "the": true, "a": true, "an": true,
	"degree": true, "with": true, "or": true,
}

// scoreEducation checks each required label for a token overlap with any candidate entry.
// Any overlap scores 100; holding some degree without overlap earns partial credit.
func scoreEducation(entries []types.EducationEntry, required []string) types.EducationFactor {
	factor := types.EducationFactor{
		RequirementsMet:    []types.EducationMatch{},
		RequirementsNotMet: []string{},
	}

	labels := nonBlank(required)
	if len(labels) == 0 {
		factor.Score = fullScore
		return factor
	}

	var descriptions []string
	for _, entry := range entries {
		if desc := describeEducation(entry); desc != "" {
			descriptions = append(descriptions, desc)
		}
	}
	if len(descriptions) == 0 {
		factor.RequirementsNotMet = append(factor.RequirementsNotMet, labels...)
		return factor
	}

	for _, label := range labels {
		labelTokens := educationTokens(label)
		met := false
		for _, desc := range descriptions {
			if overlaps(labelTokens, educationTokens(desc)) {
				factor.RequirementsMet = append(factor.RequirementsMet, types.EducationMatch{Required: label, StudentHas: desc})
				met = true
				break
			}
		}
		if !met {
			factor.RequirementsNotMet = append(factor.RequirementsNotMet, label)
		}
	}

	if len(factor.RequirementsMet) > 0 {
		factor.Score = fullScore
	} else {
		factor.Score = educationPartialScore
	}
	return factor
}

func describeEducation(entry types.EducationEntry) string {
	return strings.TrimSpace(strings.Join(strings.Fields(entry.Degree+" "+entry.Field), " "))
}

// educationTokens lower-cases a label, drops dots so "B.Tech" equals "btech",
// and splits it into words without stopwords or single letters.
func educationTokens(s string) map[string]bool {
	s = strings.ReplaceAll(strings.ToLower(s), ".", "")
	tokens := make(map[string]bool)
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(word) < 2 || educationStopwords[word] {
			continue
		}
		tokens[word] = true
	}
	return tokens
}

func overlaps(a, b map[string]bool) bool {
	for token := range a {
		if b[token] {
			return true
		}
	}
	return false
}
