// Package types provides type definitions for structured data used throughout the campus-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Candidate pipeline statuses
const (
	StatusApplied     = "applied"
	StatusShortlisted = "shortlisted"
	StatusWaitlisted  = "waitlisted"
	StatusHired       = "hired"
	StatusRejected    = "rejected"
)

// CandidateStatuses lists every status in pipeline order
var CandidateStatuses = []string{StatusApplied, StatusShortlisted, StatusWaitlisted, StatusHired, StatusRejected}

// HiringSession is a recruiting drive for one role
type HiringSession struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Role         string          `json:"role"`
	Description  string          `json:"description,omitempty"`
	Requirements *JobRequirement `json:"requirements,omitempty"`
	TargetHires  int             `json:"target_hires"`
	CurrentHires int             `json:"current_hires"`
	Status       string          `json:"status"`
	RecruiterID  string          `json:"recruiter_id,omitempty"`
}

// SessionCandidate links a student to a hiring session with a match score
type SessionCandidate struct {
	ID             string  `json:"id"`
	SessionID      string  `json:"session_id" validate:"required"`
	StudentID      string  `json:"student_id" validate:"required"`
	MatchScore     float64 `json:"match_score" validate:"gte=0,lte=100"`
	Status         string  `json:"status" validate:"required,oneof=applied shortlisted waitlisted hired rejected"`
	RecruiterNotes string  `json:"recruiter_notes,omitempty"`
}

// StatusUpdate represents a recruiter moving a candidate through the pipeline
type StatusUpdate struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	Status      string `json:"status" validate:"required,oneof=applied shortlisted waitlisted hired rejected"`
	Notes       string `json:"notes,omitempty" validate:"max=2000"`
}

// Validate validates the SessionCandidate using the validator.
func (c *SessionCandidate) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Validate validates the StatusUpdate using the validator.
func (u *StatusUpdate) Validate() error {
	validate := validator.New()
	return validate.Struct(u)
}

// SessionAnalytics summarizes the candidate pool of a hiring session
type SessionAnalytics struct {
	SessionInfo     SessionInfo     `json:"session_info"`
	CandidateStats  CandidateStats  `json:"candidate_stats"`
	PipelineMetrics PipelineMetrics `json:"pipeline_metrics"`
}

// SessionInfo is the session header shown with analytics
type SessionInfo struct {
	Title        string `json:"title"`
	Role         string `json:"role"`
	TargetHires  int    `json:"target_hires"`
	CurrentHires int    `json:"current_hires"`
}

// CandidateStats aggregates the candidate pool
type CandidateStats struct {
	TotalCandidates        int                    `json:"total_candidates"`
	StatusDistribution     map[string]int         `json:"status_distribution"`
	MatchScoreDistribution MatchScoreDistribution `json:"match_score_distribution"`
	YearDistribution       map[string]int         `json:"year_distribution"`
	DepartmentDistribution map[string]int         `json:"department_distribution"`
	SkillsAnalysis         SkillsAnalysis         `json:"skills_analysis"`
	AcademicStats          AcademicStats          `json:"academic_stats"`
}

// MatchScoreDistribution buckets candidates by match label
type MatchScoreDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}

// SkillCount is a skill and the number of candidates listing it
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SkillsAnalysis describes the skill spread of the pool
type SkillsAnalysis struct {
	MostCommonSkills  []SkillCount `json:"most_common_skills"`
	AverageSkillCount float64      `json:"average_skill_count"`
}

// AcademicStats averages academic signals across the pool
type AcademicStats struct {
	AverageGPA           float64 `json:"average_gpa"`
	AverageATSScore      float64 `json:"average_ats_score"`
	InternshipPercentage float64 `json:"internship_percentage"`
}

// PipelineMetrics describes conversion through the pipeline
type PipelineMetrics struct {
	ConversionRates map[string]float64 `json:"conversion_rates"`
	TopPerformers   []TopPerformer     `json:"top_performers"`
}

// TopPerformer is one of the highest-scoring candidates of a session
type TopPerformer struct {
	CandidateID string  `json:"candidate_id"`
	StudentID   string  `json:"student_id"`
	MatchScore  float64 `json:"match_score"`
	Status      string  `json:"status"`
	SkillsCount int     `json:"skills_count"`
	GPA         string  `json:"gpa,omitempty"`
	Year        int     `json:"year,omitempty"`
}
