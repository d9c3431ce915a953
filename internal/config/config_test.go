package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/campus-match/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"scoring": {
			"skills_weight": 0.5,
			"education_weight": 0.2,
			"experience_weight": 0.2,
			"academic_weight": 0.1,
			"year_weight": 0,
			"default_min_score": 70
		},
		"ranking": {"concurrency": 4},
		"output_dir": "out",
		"log": {"json": true}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Scoring.SkillsWeight)
	assert.Equal(t, 0.0, cfg.Scoring.YearWeight)
	assert.Equal(t, 70.0, cfg.Scoring.DefaultMinScore)
	assert.Equal(t, 4, cfg.Ranking.Concurrency)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.Log.JSON)
	assert.False(t, cfg.Log.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAMLKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", "scoring:\n  default_min_score: 75\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 75.0, cfg.Scoring.DefaultMinScore)
	assert.Equal(t, 0.40, cfg.Scoring.SkillsWeight)
	assert.Equal(t, "output", cfg.OutputDir)
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ranking.DefaultConfig(), cfg.Scoring)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CAMPUS_MATCH_SCORING_DEFAULT_MIN_SCORE", "65")
	t.Setenv("CAMPUS_MATCH_RANKING_CONCURRENCY", "2")
	t.Setenv("DATABASE_URL", "postgres://localhost/campus")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 65.0, cfg.Scoring.DefaultMinScore)
	assert.Equal(t, 2, cfg.Ranking.Concurrency)
	assert.Equal(t, "postgres://localhost/campus", cfg.DatabaseURL)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"weights do not sum", func(c *Config) { c.Scoring.SkillsWeight = 0.9 }, "config error: scoring: weights must sum to 1"},
		{"weight out of range", func(c *Config) { c.Scoring.YearWeight = 1.5 }, "year_weight must be between 0 and 1"},
		{"threshold out of range", func(c *Config) { c.Scoring.DefaultMinScore = -1 }, "default_min_score must be between 0 and 100"},
		{"negative concurrency", func(c *Config) { c.Ranking.Concurrency = -1 }, "'ranking.concurrency' must be non-negative"},
		{"empty output dir", func(c *Config) { c.OutputDir = " " }, "'output_dir' must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Scoring:     ranking.Config{DefaultMinScore: 80},
		DatabaseURL: "postgres://override",
	}
	defaults := Defaults()
	defaults.DatabaseURL = "postgres://default"
	defaults.Ranking.Concurrency = 8

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 0.40, merged.Scoring.SkillsWeight)
	assert.Equal(t, 80.0, merged.Scoring.DefaultMinScore)
	assert.Equal(t, "postgres://override", merged.DatabaseURL)
	assert.Equal(t, 8, merged.Ranking.Concurrency)
	assert.Equal(t, "output", merged.OutputDir)
	assert.NoError(t, merged.Validate())
}

func TestMergeWithDefaults_KeepsExplicitWeights(t *testing.T) {
	cfg := &Config{Scoring: ranking.Config{SkillsWeight: 1, DefaultMinScore: 50}, OutputDir: "out"}

	merged := cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, ranking.Config{SkillsWeight: 1, DefaultMinScore: 50}, merged.Scoring)
	assert.Equal(t, "out", merged.OutputDir)
}

func TestScoringConfig(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, ranking.DefaultConfig(), cfg.ScoringConfig())
}
