package extraction

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/skills"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/jonathan/campus-match/internal/validation"
	"go.uber.org/zap"
)

var namePattern = regexp.MustCompile(`^\p{Lu}[\p{L}.'\-]*(?:\s+\p{L}[\p{L}.'\-]*){1,3}$`)

// ExtractCandidateProfile composes the skill, academic, section and ATS extractors
// into a profile. It never fails: a sub-extractor that panics leaves its field at
// the default and the remaining fields are still extracted.
func ExtractCandidateProfile(resumeText string) *types.CandidateProfile {
	profile := &types.CandidateProfile{
		Skills:            []string{},
		Projects:          []string{},
		ExperienceEntries: []string{},
	}

	text := ingestion.CleanText(resumeText)
	if text == "" {
		return profile
	}
	profile.ID = ingestion.DocumentID(text)

	guard("name", func() { profile.Name = detectName(text) })
	guard("skills", func() { profile.Skills = skills.Extract(text) })
	guard("academic_info", func() { profile.AcademicInfo = ExtractAcademicInfo(text) })
	guard("projects", func() { profile.Projects = ExtractProjects(text) })
	guard("experience", func() { profile.ExperienceEntries = ExtractExperience(text) })
	guard("has_internship", func() { profile.HasInternship = HasInternship(text) })
	guard("ats_score", func() { profile.ATSScore = EstimateATSScore(text) })

	return profile
}

// ExtractCandidateDocument extracts a profile from a raw document.
// Only decoded text is accepted; binary content yields an InvalidInputError.
func ExtractCandidateDocument(doc []byte) (*types.CandidateProfile, error) {
	text, err := validation.Text(doc, "resume")
	if err != nil {
		return nil, err
	}
	return ExtractCandidateProfile(text), nil
}

// guard runs one sub-extraction, recovering from a panic so the caller keeps its default
func guard(field string, extract func()) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("sub-extractor failed, keeping default",
				zap.String("field", field),
				zap.String("panic", fmt.Sprint(r)))
		}
	}()
	extract()
}

// detectName treats a short leading line of two to four capitalized words as the candidate's name
func detectName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if utf8.RuneCountInString(trimmed) <= 50 && namePattern.MatchString(trimmed) && !knownSection.MatchString(trimmed) {
			return trimmed
		}
		return ""
	}
	return ""
}
