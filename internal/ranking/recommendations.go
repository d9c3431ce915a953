package ranking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/campus-match/internal/types"
)

// maxListedSkills caps the missing skills named in a recommendation
const maxListedSkills = 5

// recommendations produces one suggestion per factor that is not fully met,
// or a single positive note when every factor is.
func recommendations(result *types.MatchResult) []string {
	var recs []string

	if result.Skills.Score < fullScore {
		missing := result.Skills.MissingSkills
		if len(missing) > maxListedSkills {
			missing = missing[:maxListedSkills]
		}
		recs = append(recs, fmt.Sprintf("Develop skills in: %s", strings.Join(missing, ", ")))
	}

	if result.Education.Score < fullScore {
		if len(result.Education.RequirementsMet) == 0 && result.Education.Score == 0 {
			recs = append(recs, "Add education details to the profile")
		} else {
			recs = append(recs, fmt.Sprintf("Education does not match the preferred background: %s",
				strings.Join(result.Education.RequirementsNotMet, ", ")))
		}
	}

	if result.Experience.Score < fullScore {
		recs = append(recs, fmt.Sprintf("Gain more practical experience through internships or projects (%.1f of %d years)",
			result.Experience.StudentExperienceYears, result.Experience.RequiredYears))
	}

	if result.Academic.Score < fullScore {
		if result.Academic.StudentGPA == "" {
			recs = append(recs, "Add GPA to the profile")
		} else {
			recs = append(recs, fmt.Sprintf("Improve CGPA to meet the minimum of %s",
				strconv.FormatFloat(result.Academic.RequiredCGPA, 'f', -1, 64)))
		}
	}

	if result.YearEligibility.Score < fullScore {
		if result.YearEligibility.StudentYear <= 0 {
			recs = append(recs, "Add the current academic year to the profile")
		} else {
			recs = append(recs, fmt.Sprintf("Academic year %d is not eligible for this role (eligible years: %s)",
				result.YearEligibility.StudentYear, joinYears(result.YearEligibility.EligibleYears)))
		}
	}

	if len(recs) == 0 {
		return []string{"Strong match across all criteria"}
	}
	return recs
}

func joinYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, ", ")
}
