package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.json", `{
  "skills": ["Python"],
  "academic_info": {"cgpa": 8.1},
  "projects": [],
  "experience": [],
  "has_internship": false,
  "ats_score": 55
}`)
	invalid := writeFile(t, dir, "invalid.json", `{"skills": "Python", "ats_score": 150}`)
	schemaFile := writeFile(t, dir, "schema.json", `{"type": "object", "required": ["name"]}`)

	t.Run("embedded schema passes", func(t *testing.T) {
		output, err := executeCommand(t, "validate", "--schema", "candidate_profile", "--json", valid)
		require.NoError(t, err)
		assert.Contains(t, output, "Validation passed")
	})

	t.Run("embedded schema fails", func(t *testing.T) {
		output, err := executeCommand(t, "validate", "-s", "candidate_profile", "-j", invalid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match the schema")
		assert.Contains(t, output, "Validation failed")
		assert.Contains(t, output, "skills")
	})

	t.Run("schema file", func(t *testing.T) {
		output, err := executeCommand(t, "validate", "--schema-file", schemaFile, "-j", valid)
		require.Error(t, err)
		assert.Contains(t, output, "name")
	})

	t.Run("unknown schema", func(t *testing.T) {
		_, err := executeCommand(t, "validate", "-s", "resume_plan", "-j", valid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown schema")
	})

	t.Run("no schema", func(t *testing.T) {
		_, err := executeCommand(t, "validate", "-j", valid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "either --schema or --schema-file must be provided")
	})

	t.Run("both schemas", func(t *testing.T) {
		_, err := executeCommand(t, "validate", "-s", "candidate_profile", "--schema-file", schemaFile, "-j", valid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})
}
