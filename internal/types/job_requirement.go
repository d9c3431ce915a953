// Package types provides type definitions for structured data used throughout the campus-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxRequiredSkills caps the required skills kept for a job
const MaxRequiredSkills = 10

// AllYears is the eligible-years set used when a posting carries no year restriction
var AllYears = []int{1, 2, 3, 4}

// JobRequirement represents the structured requirements derived from one job description
type JobRequirement struct {
	ID             string      `json:"id,omitempty"`
	Title          string      `json:"title,omitempty"`
	Role           string      `json:"role,omitempty"`
	RequiredSkills []string    `json:"required_skills" validate:"max=10"`
	Eligibility    Eligibility `json:"eligibility_criteria"`
}

// Eligibility holds the non-skill constraints of a job
type Eligibility struct {
	Education            []string `json:"education"`
	ExperienceYears      int      `json:"experience_years" validate:"gte=0"`
	CGPAMinimum          float64  `json:"cgpa_minimum" validate:"gte=0,lte=10"`
	SpecificRequirements []string `json:"specific_requirements"`
	EligibleYears        []int    `json:"eligible_years" validate:"dive,gte=1,lte=4"`
}

// RestrictsYears reports whether the eligible years exclude any cohort.
// An empty set and the full {1,2,3,4} set both mean "no restriction".
func (e *Eligibility) RestrictsYears() bool {
	if len(e.EligibleYears) == 0 {
		return false
	}
	for _, year := range AllYears {
		if !e.AllowsYear(year) {
			return true
		}
	}
	return false
}

// AllowsYear reports whether the given academic year is in the eligible set
func (e *Eligibility) AllowsYear(year int) bool {
	for _, y := range e.EligibleYears {
		if y == year {
			return true
		}
	}
	return false
}

// Validate validates the JobRequirement using the validator.
func (j *JobRequirement) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
