// Package types provides type definitions for structured data used throughout the campus-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Candidate profile bounds
const (
	MaxProfileEntries = 5
	MaxCGPA           = 10.0
	MaxPercentage     = 100.0
	MaxATSScore       = 100
)

// CandidateProfile represents the structured attributes derived from one résumé,
// plus the externally supplied fields consumed at scoring time.
type CandidateProfile struct {
	ID                string       `json:"id,omitempty"`
	Name              string       `json:"name,omitempty"`
	Skills            []string     `json:"skills"`
	AcademicInfo      AcademicInfo `json:"academic_info"`
	Projects          []string     `json:"projects" validate:"max=5"`
	ExperienceEntries []string     `json:"experience" validate:"max=5"`
	HasInternship     bool         `json:"has_internship"`
	ATSScore          int          `json:"ats_score" validate:"gte=0,lte=100"`

	// Supplied by the student record, not by résumé extraction
	Education  []EducationEntry `json:"education,omitempty" validate:"dive"`
	Year       int              `json:"year,omitempty" validate:"gte=0"` // 0 means unknown
	GPA        string           `json:"gpa,omitempty"`
	Department string           `json:"department,omitempty"`
}

// AcademicInfo holds scores pulled from résumé text.
// A nil field means no valid value was found, which is distinct from zero.
type AcademicInfo struct {
	CGPA              *float64 `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	TenthPercentage   *float64 `json:"tenth_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// EducationEntry is one degree held or being pursued by a candidate
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// Ref returns the identifier used for the candidate in ranked output.
func (c *CandidateProfile) Ref() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// Validate validates the CandidateProfile using the validator.
func (c *CandidateProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
