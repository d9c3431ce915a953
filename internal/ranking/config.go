// Package ranking scores candidate profiles against job requirements and ranks candidate pools.
package ranking

import (
	"fmt"
	"math"
)

// weightTolerance is how far the weight sum may drift from 1
const weightTolerance = 0.001

// Config holds the factor weights and the default ranking threshold
type Config struct {
	SkillsWeight     float64 `json:"skills_weight" mapstructure:"skills_weight"`
	EducationWeight  float64 `json:"education_weight" mapstructure:"education_weight"`
	ExperienceWeight float64 `json:"experience_weight" mapstructure:"experience_weight"`
	AcademicWeight   float64 `json:"academic_weight" mapstructure:"academic_weight"`
	YearWeight       float64 `json:"year_weight" mapstructure:"year_weight"`
	DefaultMinScore  float64 `json:"default_min_score" mapstructure:"default_min_score"`
}

// DefaultConfig returns the standard weights: skills 40%, education 25%,
// experience 20%, academic 10% and year eligibility 5%, with a threshold of 60.
func DefaultConfig() Config {
	return Config{
		SkillsWeight:     0.40,
		EducationWeight:  0.25,
		ExperienceWeight: 0.20,
		AcademicWeight:   0.10,
		YearWeight:       0.05,
		DefaultMinScore:  60.0,
	}
}

// Validate checks that every weight is in [0,1], the weights sum to 1 and the threshold is a valid score
func (c Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"skills_weight", c.SkillsWeight},
		{"education_weight", c.EducationWeight},
		{"experience_weight", c.ExperienceWeight},
		{"academic_weight", c.AcademicWeight},
		{"year_weight", c.YearWeight},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", w.name, w.value)
		}
	}

	sum := c.SkillsWeight + c.EducationWeight + c.ExperienceWeight + c.AcademicWeight + c.YearWeight
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %.4f", sum)
	}

	if c.DefaultMinScore < 0 || c.DefaultMinScore > 100 {
		return fmt.Errorf("default_min_score must be between 0 and 100, got %v", c.DefaultMinScore)
	}
	return nil
}
