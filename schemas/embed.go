// Package schemas embeds the JSON Schemas of the artifacts the CLI reads and writes.
package schemas

import (
	"embed"
	"fmt"
)

// Schema names, without the .schema.json suffix
const (
	CandidateProfile = "candidate_profile"
	JobRequirement   = "job_requirement"
	MatchResult      = "match_result"
	RankedCandidates = "ranked_candidates"
)

//go:embed *.schema.json
var files embed.FS

// Names lists every embedded schema
var Names = []string{CandidateProfile, JobRequirement, MatchResult, RankedCandidates}

// Load returns the content of the named schema
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile(name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return data, nil
}
