// Package types provides type definitions for structured data used throughout the campus-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RankedCandidates represents the ranked output for one job
type RankedCandidates struct {
	JobID    string            `json:"job_id,omitempty"`
	MinScore float64           `json:"min_score"`
	Ranked   []RankedCandidate `json:"ranked"`
	// Skipped counts candidates whose scoring failed
	Skipped int `json:"skipped"`
}

// RankedCandidate is a single candidate that met the threshold
type RankedCandidate struct {
	CandidateRef string  `json:"candidate_ref"`
	Score        float64 `json:"score"`
	Label        string  `json:"label"`
}
