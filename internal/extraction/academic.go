// Package extraction derives structured candidate profiles from résumé text.
package extraction

import (
	"regexp"
	"strconv"

	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/types"
)

// scorePattern pairs a pattern with the range its captured value must fall in
type scorePattern struct {
	re  *regexp.Regexp
	min float64
	max float64
}

const number = `(\d+(?:\.\d+)?)`

// Pattern families run over normalized (lower-cased) text, most specific synonym first.
var (
	cgpaPatterns = []scorePattern{
		{regexp.MustCompile(`\bcgpa\s*(?:of|is|[:=\-])?\s*` + number), 0, types.MaxCGPA},
		{regexp.MustCompile(`\bcpi\s*(?:of|is|[:=\-])?\s*` + number), 0, types.MaxCGPA},
		{regexp.MustCompile(`\bsgpa\s*(?:of|is|[:=\-])?\s*` + number), 0, types.MaxCGPA},
		{regexp.MustCompile(`\bgpa\s*(?:of|is|[:=\-])?\s*` + number), 0, types.MaxCGPA},
		{regexp.MustCompile(number + `\s*/\s*10(?:\.0+)?\b`), 0, types.MaxCGPA},
	}

	tenthPatterns = []scorePattern{
		{regexp.MustCompile(`\b(?:10th|tenth|class\s+x|ssc|sslc|matriculation)\b[^\n%]{0,60}?` + number + `\s*%`), 0, types.MaxPercentage},
		{regexp.MustCompile(`\b(?:10th|tenth|class\s+x|ssc|sslc|matriculation)\b[^\d\n]{0,40}?` + number), 0, types.MaxPercentage},
	}

	twelfthPatterns = []scorePattern{
		{regexp.MustCompile(`\b(?:12th|twelfth|class\s+xii|hsc|higher\s+secondary|puc)\b[^\n%]{0,60}?` + number + `\s*%`), 0, types.MaxPercentage},
		{regexp.MustCompile(`\b(?:12th|twelfth|class\s+xii|hsc|higher\s+secondary|puc)\b[^\d\n]{0,40}?` + number), 0, types.MaxPercentage},
	}
)

// ExtractAcademicInfo pulls CGPA and 10th/12th percentages from résumé text.
// A field stays nil when no pattern yields an in-range value.
func ExtractAcademicInfo(text string) types.AcademicInfo {
	normalized := ingestion.Normalize(text)
	if normalized == "" {
		return types.AcademicInfo{}
	}

	return types.AcademicInfo{
		CGPA:              firstInRange(normalized, cgpaPatterns),
		TenthPercentage:   firstInRange(normalized, tenthPatterns),
		TwelfthPercentage: firstInRange(normalized, twelfthPatterns),
	}
}

// firstInRange returns the value of the first pattern whose match parses and is in range.
// Out-of-range or unparsable matches move on to the next pattern.
func firstInRange(text string, family []scorePattern) *float64 {
	for _, p := range family {
		match := p.re.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil || value < p.min || value > p.max {
			continue
		}
		return &value
	}
	return nil
}
