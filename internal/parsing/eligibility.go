package parsing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/campus-match/internal/types"
)

// degreeLabel maps a degree or field pattern to its canonical label
type degreeLabel struct {
	pattern *regexp.Regexp
	label   string
}

// educationLabels run over normalized text; each label is reported once, in table order
var educationLabels = []degreeLabel{
	{regexp.MustCompile(`\bb\.?\s?tech\b`), "B.Tech"},
	{regexp.MustCompile(`\bm\.?\s?tech\b`), "M.Tech"},
	{regexp.MustCompile(`\bb\.e\b|\bbachelor\s+of\s+engineering\b`), "B.E"},
	{regexp.MustCompile(`\bm\.e\b|\bmaster\s+of\s+engineering\b`), "M.E"},
	{regexp.MustCompile(`\bb\.?\s?sc\b|\bbachelor\s+of\s+science\b`), "B.Sc"},
	{regexp.MustCompile(`\bm\.?\s?sc\b|\bmaster\s+of\s+science\b`), "M.Sc"},
	{regexp.MustCompile(`\bbca\b`), "BCA"},
	{regexp.MustCompile(`\bmca\b`), "MCA"},
	{regexp.MustCompile(`\bmba\b`), "MBA"},
	{regexp.MustCompile(`\bph\.?\s?d\b|\bdoctorate\b`), "PhD"},
	{regexp.MustCompile(`\bbachelor'?s?\b|\bundergraduate\s+degree\b`), "Bachelor's"},
	{regexp.MustCompile(`\bmaster'?s?\s+(?:degree|of|in)\b|\bpost\s*graduate\b`), "Master's"},
	{regexp.MustCompile(`\bcomputer\s+science\b|\bcse\b`), "Computer Science"},
	{regexp.MustCompile(`\binformation\s+technology\b`), "Information Technology"},
	{regexp.MustCompile(`\belectronics\b|\bece\b`), "Electronics"},
	{regexp.MustCompile(`\belectrical\s+engineering\b|\beee\b`), "Electrical Engineering"},
	{regexp.MustCompile(`\bmechanical\s+engineering\b`), "Mechanical Engineering"},
	{regexp.MustCompile(`\bcivil\s+engineering\b`), "Civil Engineering"},
}

// Numeric requirement patterns run over normalized text
var (
	experienceYearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:(?:-|to)\s*(\d{1,2})\s*\+?\s*)?(?:years?|yrs?)\b(?:\s+of)?(?:\s+[\w+#./\-]+){0,3}?\s+experience`),
		regexp.MustCompile(`experience\s*(?:of|:|-)?\s*(?:at\s+least\s+|minimum\s+(?:of\s+)?)?(\d{1,2})\s*\+?\s*(?:(?:-|to)\s*(\d{1,2})\s*\+?\s*)?(?:years?|yrs?)\b`),
		regexp.MustCompile(`(?:minimum|at\s+least)\s+(?:of\s+)?(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`),
	}

	cgpaMinimumPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:cgpa|gpa|cpi)\s*(?:of|:|-|>=|≥)?\s*(?:at\s+least\s+|minimum\s+(?:of\s+)?|above\s+|over\s+)?(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:cgpa|gpa|cpi)\b`),
	}

	// "7.5/10" and "7.5 out of 10" keep only the numerator
	cgpaScalePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:/|out\s+of)\s*10(?:\.0+)?\b`)

	// A years phrase naming a degree or course is a duration, not experience
	degreeDurationPattern = regexp.MustCompile(`\b(?:degree|course|program(?:me)?|diploma|curriculum|b\.?\s?tech|m\.?\s?tech|b\.e|bachelor'?s?|master'?s?|graduation|undergraduate|semesters?)\b`)

	specificRequirementPattern = regexp.MustCompile(`(?i)\b(?:must\s+have|should\s+have|preferred|certification\s+in)\s*:?\s*([^.\n;]+)`)
)

// Specific requirement length window, in characters
const (
	minRequirementLength = 5
	maxRequirementLength = 150
)

// yearRule maps a phrase to the academic years it targets.
// Matched phrases are removed before later rules run, so "pre-final year" never also counts as "final year".
type yearRule struct {
	pattern *regexp.Regexp
	years   []int
}

var yearRules = []yearRule{
	{regexp.MustCompile(`\b(?:3rd|third)\s+(?:and|&|or|/)\s+(?:4th|fourth|final)\s+years?\b`), []int{3, 4}},
	{regexp.MustCompile(`\bpre[\s\-]*final[\s\-]+years?\b`), []int{3}},
	{regexp.MustCompile(`\bfinal[\s\-]+(?:years?|semester)\b|\b(?:4th|fourth)[\s\-]+years?\b`), []int{4}},
	{regexp.MustCompile(`\b(?:3rd|third)[\s\-]+years?\b`), []int{3}},
	{regexp.MustCompile(`\b(?:2nd|second)[\s\-]+years?\b`), []int{2}},
	{regexp.MustCompile(`\b(?:1st|first)[\s\-]+years?\b`), []int{1}},
	{regexp.MustCompile(`\bfreshers?\b|\brecent\s+graduates?\b|\bgraduating\s+students?\b|\b\d{4}\s+(?:batch|graduates|pass[\s\-]?outs?)\b`), []int{4}},
}

// ExtractEducation returns the canonical labels of every degree or field mentioned
func ExtractEducation(normalized string) []string {
	labels := make([]string, 0)
	for _, entry := range educationLabels {
		if entry.pattern.MatchString(normalized) {
			labels = append(labels, entry.label)
		}
	}
	return labels
}

// ExtractExperienceYears returns the largest number of years mentioned in an experience requirement
func ExtractExperienceYears(normalized string) int {
	best := 0
	for _, pattern := range experienceYearPatterns {
		for _, match := range pattern.FindAllStringSubmatch(normalized, -1) {
			if degreeDurationPattern.MatchString(match[0]) {
				continue
			}
			for _, group := range match[1:] {
				if years, err := strconv.Atoi(group); err == nil && years > best {
					best = years
				}
			}
		}
	}
	return best
}

// ExtractCGPAMinimum returns the largest CGPA mentioned that fits the 10-point scale
func ExtractCGPAMinimum(normalized string) float64 {
	best := 0.0
	normalized = cgpaScalePattern.ReplaceAllString(normalized, "$1")
	for _, pattern := range cgpaMinimumPatterns {
		for _, match := range pattern.FindAllStringSubmatch(normalized, -1) {
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil || value > types.MaxCGPA {
				continue
			}
			if value > best {
				best = value
			}
		}
	}
	return best
}

// ExtractSpecificRequirements keeps the clauses following "must have", "should have",
// "preferred" and "certification in", capitalized and length-filtered.
func ExtractSpecificRequirements(text string) []string {
	requirements := make([]string, 0)
	for _, match := range specificRequirementPattern.FindAllStringSubmatch(text, -1) {
		clause := strings.TrimSpace(strings.Trim(match[1], " ,-"))
		length := utf8.RuneCountInString(clause)
		if length < minRequirementLength || length > maxRequirementLength {
			continue
		}
		requirements = append(requirements, capitalize(clause))
	}
	return requirements
}

// ExtractEligibleYears maps year phrases to the academic years a posting targets.
// Without any year signal every year is eligible.
func ExtractEligibleYears(normalized string) []int {
	remaining := normalized
	eligible := make(map[int]bool)
	for _, rule := range yearRules {
		if !rule.pattern.MatchString(remaining) {
			continue
		}
		for _, year := range rule.years {
			eligible[year] = true
		}
		remaining = rule.pattern.ReplaceAllString(remaining, " ")
	}

	if len(eligible) == 0 {
		return append([]int(nil), types.AllYears...)
	}

	years := make([]int, 0, len(eligible))
	for year := range eligible {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
