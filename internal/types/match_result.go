// Package types provides type definitions for structured data used throughout the campus-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchResult is the detailed compatibility breakdown for one candidate and one job
type MatchResult struct {
	CandidateRef    string                `json:"candidate_ref,omitempty"`
	OverallScore    float64               `json:"overall_score"`
	Label           string                `json:"label"`
	Skills          SkillsFactor          `json:"skills_analysis"`
	Education       EducationFactor       `json:"education_analysis"`
	Experience      ExperienceFactor      `json:"experience_analysis"`
	Academic        AcademicFactor        `json:"academic_analysis"`
	YearEligibility YearEligibilityFactor `json:"year_eligibility_analysis"`
	Recommendations []string              `json:"recommendations"`
}

// FactorScore is the weighted sub-score shared by every factor
type FactorScore struct {
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// SkillMatch pairs a required skill with the candidate skill that satisfied it
type SkillMatch struct {
	Required   string `json:"required"`
	StudentHas string `json:"student_has"`
}

// SkillsFactor carries the skills evidence
type SkillsFactor struct {
	FactorScore
	MatchedSkills    []SkillMatch `json:"matched_skills"`
	MissingSkills    []string     `json:"missing_skills"`
	AdditionalSkills []string     `json:"additional_skills"`
}

// EducationMatch pairs a required education label with the candidate entry that satisfied it
type EducationMatch struct {
	Required   string `json:"required"`
	StudentHas string `json:"student_has"`
}

// EducationFactor carries the education evidence
type EducationFactor struct {
	FactorScore
	RequirementsMet    []EducationMatch `json:"requirements_met"`
	RequirementsNotMet []string         `json:"requirements_not_met"`
}

// ExperienceFactor carries the computed versus required experience
type ExperienceFactor struct {
	FactorScore
	RequiredYears          int     `json:"required_years"`
	StudentExperienceYears float64 `json:"student_experience_years"`
	HasInternship          bool    `json:"has_internship"`
}

// AcademicFactor carries the GPA comparison
type AcademicFactor struct {
	FactorScore
	RequiredCGPA     float64 `json:"required_cgpa"`
	StudentGPA       string  `json:"student_gpa"`
	MeetsRequirement bool    `json:"meets_requirement"`
}

// YearEligibilityFactor carries the academic-year comparison
type YearEligibilityFactor struct {
	FactorScore
	EligibleYears []int `json:"eligible_years"`
	StudentYear   int   `json:"student_year"`
	IsEligible    bool  `json:"is_eligible"`
}
