package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/campus-match/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.txt", "Backend Developer\nRequired: Python, SQL and Docker.")
	resumes := filepath.Join(dir, "resumes")
	writeFile(t, resumes, "asha.txt", "Asha Rao\nasha@example.com\n\nSKILLS\nPython, SQL, Docker")
	writeFile(t, resumes, "ravi.md", "Ravi Menon\nravi@example.com\n\nSKILLS\nFigma, Photoshop")
	outputDir := filepath.Join(dir, "out")
	metricsFile := filepath.Join(dir, "metrics.prom")

	output, err := executeCommand(t, "run", "-f", job, "-r", resumes, "-o", outputDir,
		"--metrics-file", metricsFile, "--min-score", "70")
	require.NoError(t, err)
	assert.Contains(t, output, "Step 1/4")
	assert.Contains(t, output, "Successfully wrote 1 match results")

	assert.FileExists(t, filepath.Join(outputDir, pipeline.JobRequirementFile))
	assert.FileExists(t, filepath.Join(outputDir, pipeline.RankedCandidatesFile))
	assert.FileExists(t, metricsFile)

	record, err := readRecord(filepath.Join(outputDir, pipeline.RankedCandidatesFile))
	require.NoError(t, err)
	assert.Equal(t, 70.0, record["min_score"])
}

func TestRunCommand_OutputDirFromConfig(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.txt", "Required: Python.")
	resumes := filepath.Join(dir, "resumes")
	writeFile(t, resumes, "asha.txt", "Asha Rao\n\nSKILLS\nPython")
	outputDir := filepath.Join(dir, "configured")
	cfg := writeFile(t, dir, "config.yaml", "output_dir: "+outputDir+"\n")

	_, err := executeCommand(t, "run", "--job-file", job, "--resumes", resumes, "--config", cfg)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(outputDir, pipeline.MatchesDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.txt", "Required: Python.")
	resumes := filepath.Join(dir, "resumes")
	writeFile(t, resumes, "asha.txt", "Asha Rao\n\nSKILLS\nPython")

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"no job source", []string{"run", "-r", resumes}, "either --job-file or --job-url must be provided"},
		{"both job sources", []string{"run", "-f", job, "-u", "https://example.com/job", "-r", resumes}, "mutually exclusive"},
		{"missing resumes flag", []string{"run", "-f", job}, "required flag"},
		{"bad min score", []string{"run", "-f", job, "-r", resumes, "--min-score", "-1"}, "--min-score must be between 0 and 100"},
		{"missing resume dir", []string{"run", "-f", job, "-r", filepath.Join(dir, "missing"), "-o", filepath.Join(dir, "out")}, "pipeline failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}
