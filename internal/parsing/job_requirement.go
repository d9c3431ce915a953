// Package parsing derives structured job requirements from free-text job descriptions.
package parsing

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/jonathan/campus-match/internal/validation"
	"go.uber.org/zap"
)

const maxTitleLength = 80

var (
	titlePattern = regexp.MustCompile(`(?im)^\s*(?:job\s+title|position|title)\s*:\s*(.+)$`)
	rolePattern  = regexp.MustCompile(`(?im)^\s*role\s*:\s*(.+)$`)
)

// ExtractJobRequirement builds a JobRequirement from job description text.
// Each sub-extraction runs independently: one that fails leaves its field at the
// default and never prevents the others.
func ExtractJobRequirement(jobText string) *types.JobRequirement {
	req := &types.JobRequirement{
		RequiredSkills: []string{},
		Eligibility: types.Eligibility{
			Education:            []string{},
			SpecificRequirements: []string{},
			EligibleYears:        append([]int(nil), types.AllYears...),
		},
	}

	text := ingestion.CleanText(jobText)
	if text == "" {
		return req
	}
	req.ID = ingestion.DocumentID(text)
	normalized := ingestion.Normalize(text)

	guard("title", func() { req.Title = detectTitle(text) })
	guard("role", func() { req.Role = firstCapture(rolePattern, text) })
	guard("required_skills", func() { req.RequiredSkills = ExtractRequiredSkills(text) })
	guard("education", func() { req.Eligibility.Education = ExtractEducation(normalized) })
	guard("experience_years", func() { req.Eligibility.ExperienceYears = ExtractExperienceYears(normalized) })
	guard("cgpa_minimum", func() { req.Eligibility.CGPAMinimum = ExtractCGPAMinimum(normalized) })
	guard("specific_requirements", func() { req.Eligibility.SpecificRequirements = ExtractSpecificRequirements(text) })
	guard("eligible_years", func() { req.Eligibility.EligibleYears = ExtractEligibleYears(normalized) })

	return req
}

// ExtractJobDocument extracts a requirement from a raw job description document.
// Only decoded text is accepted; binary content yields an InvalidInputError.
func ExtractJobDocument(doc []byte) (*types.JobRequirement, error) {
	text, err := validation.Text(doc, "job_description")
	if err != nil {
		return nil, err
	}
	return ExtractJobRequirement(text), nil
}

// guard runs one sub-extraction, recovering from a panic so the caller keeps its default
func guard(field string, extract func()) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("job sub-extractor failed, keeping default",
				zap.String("field", field),
				zap.String("panic", fmt.Sprint(r)))
		}
	}()
	extract()
}

// detectTitle prefers an explicit "Title:" line and otherwise uses a short first line
func detectTitle(text string) string {
	if title := firstCapture(titlePattern, text); title != "" {
		return title
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if utf8.RuneCountInString(trimmed) > maxTitleLength || strings.HasSuffix(trimmed, ".") || strings.Contains(trimmed, ":") {
			return ""
		}
		return trimmed
	}
	return ""
}

func firstCapture(re *regexp.Regexp, text string) string {
	match := re.FindStringSubmatch(text)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}
