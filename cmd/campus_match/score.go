package main

import (
	"fmt"

	"github.com/jonathan/campus-match/internal/observability"
	"github.com/jonathan/campus-match/internal/ranking"
	schemafiles "github.com/jonathan/campus-match/schemas"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate against one job",
	Long: "Score a CandidateProfile JSON against a JobRequirement JSON with the configured factor weights. " +
		"With --detailed the full per-factor breakdown and recommendations are produced.",
	RunE: runScore,
}

var (
	scoreCandidate string
	scoreJob       string
	scoreOutput    string
	scoreDetailed  bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreCandidate, "candidate", "c", "", "Path to CandidateProfile JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to JobRequirement JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output MatchResult JSON file (with --detailed)")
	scoreCmd.Flags().BoolVar(&scoreDetailed, "detailed", false, "Produce the per-factor breakdown")

	if err := scoreCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scoreOutput != "" && !scoreDetailed {
		return fmt.Errorf("--out requires --detailed")
	}

	candidate, err := loadCandidate(scoreCandidate)
	if err != nil {
		return err
	}
	job, err := loadJob(scoreJob)
	if err != nil {
		return err
	}
	matcher, err := newMatcher()
	if err != nil {
		return err
	}

	if !scoreDetailed {
		score, err := matcher.ScoreMatch(candidate, job)
		if err != nil {
			return fmt.Errorf("failed to score candidate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Match score: %.2f (%s)\n", score, ranking.MatchLabel(score))
		return nil
	}

	result, err := matcher.ScoreMatchDetailed(candidate, job)
	if err != nil {
		return fmt.Errorf("failed to score candidate: %w", err)
	}

	if scoreOutput != "" {
		if err := writeJSONFile(scoreOutput, schemafiles.MatchResult, result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote match result to %s\n", scoreOutput)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMatchResult(result)
	return nil
}

// newMatcher builds a matcher from the loaded scoring configuration
func newMatcher() (*ranking.Matcher, error) {
	matcher, err := ranking.NewMatcher(appConfig.ScoringConfig())
	if err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return matcher, nil
}

// minScoreOverride returns the --min-score value when it was set on cmd
func minScoreOverride(cmd *cobra.Command, value float64) (*float64, error) {
	if !cmd.Flags().Changed("min-score") {
		return nil, nil
	}
	if value < 0 || value > 100 {
		return nil, fmt.Errorf("--min-score must be between 0 and 100, got %v", value)
	}
	return &value, nil
}
