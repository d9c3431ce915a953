package main

import (
	"fmt"

	"github.com/jonathan/campus-match/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rank a directory of résumés against a job posting",
	Long: "Run the full pipeline: ingest a job posting (file or URL) and a directory of résumés concurrently, " +
		"extract profiles, rank them and write every artifact to the output directory.",
	RunE: runPipeline,
}

var (
	runJobFile     string
	runJobURL      string
	runResumeDir   string
	runOutputDir   string
	runMetricsFile string
	runMinScore    float64
)

func init() {
	runCmd.Flags().StringVarP(&runJobFile, "job-file", "f", "", "Path to job description file")
	runCmd.Flags().StringVarP(&runJobURL, "job-url", "u", "", "URL of the job posting")
	runCmd.Flags().StringVarP(&runResumeDir, "resumes", "r", "", "Directory of résumé files (required)")
	runCmd.Flags().StringVarP(&runOutputDir, "out", "o", "", "Output directory (defaults to output_dir from config)")
	runCmd.Flags().StringVar(&runMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	runCmd.Flags().Float64Var(&runMinScore, "min-score", 0, "Minimum score to keep (defaults to scoring.default_min_score)")

	if err := runCmd.MarkFlagRequired("resumes"); err != nil {
		panic(fmt.Sprintf("failed to mark resumes flag as required: %v", err))
	}

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	if runJobFile == "" && runJobURL == "" {
		return fmt.Errorf("either --job-file or --job-url must be provided")
	}
	if runJobFile != "" && runJobURL != "" {
		return fmt.Errorf("--job-file and --job-url are mutually exclusive; provide only one")
	}
	override, err := minScoreOverride(cmd, runMinScore)
	if err != nil {
		return err
	}

	outputDir := runOutputDir
	if outputDir == "" {
		outputDir = appConfig.OutputDir
	}
	metricsFile := runMetricsFile
	if metricsFile == "" {
		metricsFile = appConfig.MetricsFile
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.RunOptions{
		JobPath:     runJobFile,
		JobURL:      runJobURL,
		ResumeDir:   runResumeDir,
		OutputDir:   outputDir,
		Scoring:     appConfig.ScoringConfig(),
		MinScore:    override,
		Concurrency: appConfig.Ranking.Concurrency,
		MetricsFile: metricsFile,
		Verbose:     verbose,
		Logger:      appLogger,
		Out:         cmd.OutOrStdout(),
		OnProgress: func(event pipeline.ProgressEvent) {
			appLogger.Debug(event.Message, zap.String("step", event.Step), zap.String("category", event.Category))
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d match results to %s\n", len(result.Matches), outputDir)
	return nil
}
