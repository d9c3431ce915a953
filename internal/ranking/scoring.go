package ranking

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/campus-match/internal/types"
)

// Factor score bands
const (
	fullScore = 100.0

	// Experience heuristic: each entry counts as half a year; meeting half the requirement earns 80
	yearsPerEntry          = 0.5
	experiencePartialScore = 80.0
	experienceLowScore     = 40.0

	// Academic: within 90% of the minimum earns 80, anything lower or unknown earns 50
	academicNearRatio    = 0.9
	academicNearScore    = 80.0
	academicDefaultScore = 50.0

	educationPartialScore = 50.0
	yearUnknownScore      = 50.0
)

var (
	explicitYears = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)
	leadingNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
)

// scoreSkills counts the required skills that have a bidirectional substring match
// among the candidate's skills.
func scoreSkills(candidateSkills, required []string) types.SkillsFactor {
	factor := types.SkillsFactor{
		MatchedSkills:    []types.SkillMatch{},
		MissingSkills:    []string{},
		AdditionalSkills: []string{},
	}

	have := nonBlank(candidateSkills)
	need := nonBlank(required)

	if len(need) == 0 {
		factor.Score = fullScore
		factor.AdditionalSkills = append(factor.AdditionalSkills, have...)
		return factor
	}
	if len(have) == 0 {
		factor.MissingSkills = append(factor.MissingSkills, need...)
		return factor
	}

	used := make([]bool, len(have))
	for _, req := range need {
		reqLower := strings.ToLower(req)
		matched := false
		for i, skill := range have {
			skillLower := strings.ToLower(skill)
			if strings.Contains(skillLower, reqLower) || strings.Contains(reqLower, skillLower) {
				factor.MatchedSkills = append(factor.MatchedSkills, types.SkillMatch{Required: req, StudentHas: skill})
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			factor.MissingSkills = append(factor.MissingSkills, req)
		}
	}

	for i, skill := range have {
		if !used[i] {
			factor.AdditionalSkills = append(factor.AdditionalSkills, skill)
		}
	}

	factor.Score = fullScore * float64(len(factor.MatchedSkills)) / float64(len(need))
	return factor
}

// estimateExperienceYears adds half a year per entry to the years stated in the entries
func estimateExperienceYears(entries []string) float64 {
	years := yearsPerEntry * float64(len(entries))
	for _, entry := range entries {
		for _, match := range explicitYears.FindAllStringSubmatch(entry, -1) {
			if v, err := strconv.ParseFloat(match[1], 64); err == nil {
				years += v
			}
		}
	}
	return years
}

// scoreExperience compares estimated experience to the required years
func scoreExperience(candidate *types.CandidateProfile, requiredYears int) types.ExperienceFactor {
	years := estimateExperienceYears(candidate.ExperienceEntries)
	factor := types.ExperienceFactor{
		RequiredYears:          requiredYears,
		StudentExperienceYears: years,
		HasInternship:          candidate.HasInternship,
	}

	required := float64(requiredYears)
	switch {
	case requiredYears <= 0 || years >= required:
		factor.Score = fullScore
	case years >= required/2:
		factor.Score = experiencePartialScore
	default:
		factor.Score = experienceLowScore
	}
	return factor
}

// candidateGPA returns the candidate's GPA, preferring the supplied GPA text
// and falling back to the CGPA found in the résumé.
func candidateGPA(candidate *types.CandidateProfile) (float64, string, bool) {
	if match := leadingNumber.FindStringSubmatch(candidate.GPA); match != nil {
		if v, err := strconv.ParseFloat(match[1], 64); err == nil {
			return v, strings.TrimSpace(candidate.GPA), true
		}
	}
	if cgpa := candidate.AcademicInfo.CGPA; cgpa != nil {
		return *cgpa, strconv.FormatFloat(*cgpa, 'f', -1, 64), true
	}
	return 0, strings.TrimSpace(candidate.GPA), false
}

// CandidateGPA returns the numeric GPA used for scoring, if the candidate has one
func CandidateGPA(candidate *types.CandidateProfile) (float64, bool) {
	if candidate == nil {
		return 0, false
	}
	gpa, _, ok := candidateGPA(candidate)
	return gpa, ok
}

// scoreAcademic compares the candidate's GPA to the job's minimum
func scoreAcademic(candidate *types.CandidateProfile, minimum float64) types.AcademicFactor {
	gpa, display, ok := candidateGPA(candidate)
	factor := types.AcademicFactor{
		RequiredCGPA: minimum,
		StudentGPA:   display,
	}

	switch {
	case minimum <= 0:
		factor.Score = fullScore
		factor.MeetsRequirement = true
	case !ok:
		factor.Score = academicDefaultScore
	case gpa >= minimum:
		factor.Score = fullScore
		factor.MeetsRequirement = true
	case gpa >= academicNearRatio*minimum:
		factor.Score = academicNearScore
	default:
		factor.Score = academicDefaultScore
	}
	return factor
}

// scoreYear checks the candidate's academic year against the eligible set.
// A job without a year restriction accepts everyone, even when the year is unknown.
func scoreYear(candidate *types.CandidateProfile, eligibility *types.Eligibility) types.YearEligibilityFactor {
	factor := types.YearEligibilityFactor{
		EligibleYears: append([]int{}, eligibility.EligibleYears...),
		StudentYear:   candidate.Year,
	}

	switch {
	case !eligibility.RestrictsYears():
		factor.Score = fullScore
		factor.IsEligible = true
	case candidate.Year <= 0:
		factor.Score = yearUnknownScore
	case eligibility.AllowsYear(candidate.Year):
		factor.Score = fullScore
		factor.IsEligible = true
	default:
		factor.Score = 0
	}
	return factor
}

func nonBlank(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
