// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/jonathan/campus-match/internal/ranking"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CAMPUS_MATCH_SCORING_SKILLS_WEIGHT
const EnvPrefix = "CAMPUS_MATCH"

// Config represents the CLI configuration. It is read from a JSON or YAML file,
// then overridden by CAMPUS_MATCH_* environment variables and bound flags.
type Config struct {
	Scoring     ranking.Config `mapstructure:"scoring"`
	Ranking     RankingConfig  `mapstructure:"ranking"`
	DatabaseURL string         `mapstructure:"database_url"` // PostgreSQL connection URL
	Log         LogConfig      `mapstructure:"log"`
	OutputDir   string         `mapstructure:"output_dir"`   // Where pipeline artifacts are written
	MetricsFile string         `mapstructure:"metrics_file"` // Prometheus textfile, empty disables
}

// RankingConfig tunes the candidate ranker
type RankingConfig struct {
	Concurrency int `mapstructure:"concurrency"` // 0 uses GOMAXPROCS
}

// LogConfig selects the log encoding and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Scoring:   ranking.DefaultConfig(),
		OutputDir: "output",
	}
}

// LoadConfig loads configuration from path using a fresh viper instance.
// An empty path loads defaults and environment overrides only.
func LoadConfig(path string) (*Config, error) {
	return Load(viper.New(), path)
}

// Load reads configuration through v, so flags bound to v take precedence over
// environment variables, the config file and defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("scoring.skills_weight", d.Scoring.SkillsWeight)
	v.SetDefault("scoring.education_weight", d.Scoring.EducationWeight)
	v.SetDefault("scoring.experience_weight", d.Scoring.ExperienceWeight)
	v.SetDefault("scoring.academic_weight", d.Scoring.AcademicWeight)
	v.SetDefault("scoring.year_weight", d.Scoring.YearWeight)
	v.SetDefault("scoring.default_min_score", d.Scoring.DefaultMinScore)
	v.SetDefault("ranking.concurrency", d.Ranking.Concurrency)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("metrics_file", d.MetricsFile)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("config error: scoring: %w", err)
	}

	if c.Ranking.Concurrency < 0 {
		return fmt.Errorf("config error: 'ranking.concurrency' must be non-negative")
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("config error: 'output_dir' must not be empty")
	}

	return nil
}

// ScoringConfig returns the weights and threshold handed to the matcher
func (c *Config) ScoringConfig() ranking.Config {
	return c.Scoring
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// The scoring block is taken as a whole when none of its weights is set.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	s := result.Scoring
	if s.SkillsWeight == 0 && s.EducationWeight == 0 && s.ExperienceWeight == 0 && s.AcademicWeight == 0 && s.YearWeight == 0 {
		minScore := s.DefaultMinScore
		result.Scoring = defaults.Scoring
		if minScore != 0 {
			result.Scoring.DefaultMinScore = minScore
		}
	}

	if result.Ranking.Concurrency == 0 {
		result.Ranking.Concurrency = defaults.Ranking.Concurrency
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.MetricsFile == "" {
		result.MetricsFile = defaults.MetricsFile
	}

	// Bool fields: cannot distinguish unset from false, so flags always win

	return result
}
