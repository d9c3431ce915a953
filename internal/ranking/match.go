package ranking

import (
	"math"

	"github.com/jonathan/campus-match/internal/types"
	"github.com/jonathan/campus-match/internal/validation"
)

// Match label thresholds
const (
	excellentThreshold = 90.0
	goodThreshold      = 80.0
	fairThreshold      = 70.0
)

// Match labels
const (
	LabelExcellent = "Excellent Match"
	LabelGood      = "Good Match"
	LabelFair      = "Fair Match"
	LabelPoor      = "Poor Match"
)

// MatchLabel returns the human-readable band for an overall score
func MatchLabel(score float64) string {
	switch {
	case score >= excellentThreshold:
		return LabelExcellent
	case score >= goodThreshold:
		return LabelGood
	case score >= fairThreshold:
		return LabelFair
	default:
		return LabelPoor
	}
}

// Matcher computes weighted candidate-to-job compatibility scores.
// It holds only its configuration and is safe for concurrent use.
type Matcher struct {
	cfg Config
}

// NewMatcher creates a Matcher after validating the configuration
func NewMatcher(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &validation.InvalidInputError{Field: "config", Message: "invalid scoring weights", Cause: err}
	}
	return &Matcher{cfg: cfg}, nil
}

// DefaultMatcher returns a Matcher using DefaultConfig
func DefaultMatcher() *Matcher {
	return &Matcher{cfg: DefaultConfig()}
}

// Config returns the matcher's configuration
func (m *Matcher) Config() Config {
	return m.cfg
}

// ScoreMatch returns the overall 0-100 score for a candidate and a job, rounded to two decimals
func (m *Matcher) ScoreMatch(candidate *types.CandidateProfile, job *types.JobRequirement) (float64, error) {
	result, err := m.ScoreMatchDetailed(candidate, job)
	if err != nil {
		return 0, err
	}
	return result.OverallScore, nil
}

// ScoreMatchDetailed returns the overall score with the per-factor evidence and recommendations
func (m *Matcher) ScoreMatchDetailed(candidate *types.CandidateProfile, job *types.JobRequirement) (*types.MatchResult, error) {
	if candidate == nil {
		return nil, &validation.InvalidInputError{Field: "candidate", Message: "candidate is nil"}
	}
	if job == nil {
		return nil, &validation.InvalidInputError{Field: "job", Message: "job requirement is nil"}
	}

	result := &types.MatchResult{
		CandidateRef:    candidate.Ref(),
		Skills:          scoreSkills(candidate.Skills, job.RequiredSkills),
		Education:       scoreEducation(candidate.Education, job.Eligibility.Education),
		Experience:      scoreExperience(candidate, job.Eligibility.ExperienceYears),
		Academic:        scoreAcademic(candidate, job.Eligibility.CGPAMinimum),
		YearEligibility: scoreYear(candidate, &job.Eligibility),
	}
	result.Skills.Weight = m.cfg.SkillsWeight
	result.Education.Weight = m.cfg.EducationWeight
	result.Experience.Weight = m.cfg.ExperienceWeight
	result.Academic.Weight = m.cfg.AcademicWeight
	result.YearEligibility.Weight = m.cfg.YearWeight

	total := result.Skills.Weight*result.Skills.Score +
		result.Education.Weight*result.Education.Score +
		result.Experience.Weight*result.Experience.Score +
		result.Academic.Weight*result.Academic.Score +
		result.YearEligibility.Weight*result.YearEligibility.Score

	result.OverallScore = roundScore(clamp(total, 0, 100))
	result.Label = MatchLabel(result.OverallScore)
	result.Recommendations = recommendations(result)

	return result, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundScore rounds to two decimal places
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
