package main

import (
	"fmt"

	"github.com/jonathan/campus-match/internal/observability"
	"github.com/jonathan/campus-match/internal/ranking"
	schemafiles "github.com/jonathan/campus-match/schemas"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a directory of candidate profiles against a job",
	Long: "Score every CandidateProfile JSON in a directory against a JobRequirement JSON, keep those at or above " +
		"the threshold and write them as RankedCandidates JSON, best match first.",
	RunE: runRank,
}

var (
	rankJob           string
	rankCandidatesDir string
	rankOutput        string
	rankMinScore      float64
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to JobRequirement JSON file (required)")
	rankCmd.Flags().StringVarP(&rankCandidatesDir, "candidates", "c", "", "Directory of CandidateProfile JSON files (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output RankedCandidates JSON file (required)")
	rankCmd.Flags().Float64Var(&rankMinScore, "min-score", 0, "Minimum score to keep (defaults to scoring.default_min_score)")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	override, err := minScoreOverride(cmd, rankMinScore)
	if err != nil {
		return err
	}

	job, err := loadJob(rankJob)
	if err != nil {
		return err
	}
	candidates, err := loadCandidateDir(rankCandidatesDir)
	if err != nil {
		return err
	}
	matcher, err := newMatcher()
	if err != nil {
		return err
	}

	minScore := matcher.Config().DefaultMinScore
	if override != nil {
		minScore = *override
	}

	ranker := ranking.NewRanker(matcher,
		ranking.WithLogger(appLogger),
		ranking.WithConcurrency(appConfig.Ranking.Concurrency))
	ranked, err := ranker.Rank(cmd.Context(), job, candidates, minScore)
	if err != nil {
		return fmt.Errorf("failed to rank candidates: %w", err)
	}

	if err := writeJSONFile(rankOutput, schemafiles.RankedCandidates, ranked); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintRankedCandidates(ranked)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully ranked %d of %d candidates to %s\n", len(ranked.Ranked), len(candidates), rankOutput)
	return nil
}
