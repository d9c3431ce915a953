package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/campus-match/internal/schemas"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/jonathan/campus-match/internal/validation"
)

// readRecord reads a JSON object as a plain mapping
func readRecord(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var record map[string]any
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON in %s: %w", path, err)
	}
	return record, nil
}

// loadCandidate decodes a candidate profile file. Unknown keys are ignored.
func loadCandidate(path string) (*types.CandidateProfile, error) {
	record, err := readRecord(path)
	if err != nil {
		return nil, err
	}
	profile, err := validation.DecodeCandidate(record)
	if err != nil {
		return nil, fmt.Errorf("invalid candidate profile %s: %w", path, err)
	}
	return profile, nil
}

// loadJob decodes a job requirement file. A file without eligible years accepts every year.
func loadJob(path string) (*types.JobRequirement, error) {
	record, err := readRecord(path)
	if err != nil {
		return nil, err
	}
	job, err := validation.DecodeJobRequirement(record)
	if err != nil {
		return nil, fmt.Errorf("invalid job requirement %s: %w", path, err)
	}
	return job, nil
}

// loadCandidateDir decodes every .json profile in dir, in name order
func loadCandidateDir(dir string) ([]*types.CandidateProfile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	candidates := make([]*types.CandidateProfile, 0, len(names))
	for _, name := range names {
		profile, err := loadCandidate(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if profile.ID == "" && profile.Name == "" {
			profile.ID = strings.TrimSuffix(name, filepath.Ext(name))
		}
		candidates = append(candidates, profile)
	}
	return candidates, nil
}

// writeJSONFile validates v against the named schema and writes it as indented JSON,
// creating the parent directory when needed
func writeJSONFile(path, schema string, v any) error {
	if schema != "" {
		if err := schemas.ValidateValue(schema, v); err != nil {
			return fmt.Errorf("output failed %s schema validation: %w", schema, err)
		}
	}

	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
