package main

import (
	"context"
	"fmt"

	"github.com/jonathan/campus-match/internal/db"
	"github.com/jonathan/campus-match/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rankSessionCmd = &cobra.Command{
	Use:   "rank-session",
	Short: "Rank the student pool against a hiring session",
	Long: "Load a hiring session from the database, extract its requirements from the description when none are stored, " +
		"rank every student with skills and store a session candidate for each one at or above the threshold.",
	RunE: runRankSession,
}

var (
	sessionID          string
	sessionDatabaseURL string
	sessionMinScore    float64
	sessionMetricsFile string
)

func init() {
	rankSessionCmd.Flags().StringVarP(&sessionID, "session-id", "s", "", "Hiring session ID (required)")
	rankSessionCmd.Flags().StringVar(&sessionDatabaseURL, "db-url", "", "Database URL (defaults to database_url from config or DATABASE_URL)")
	rankSessionCmd.Flags().Float64Var(&sessionMinScore, "min-score", 0, "Minimum score to keep (defaults to scoring.default_min_score)")
	rankSessionCmd.Flags().StringVar(&sessionMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")

	if err := rankSessionCmd.MarkFlagRequired("session-id"); err != nil {
		panic(fmt.Sprintf("failed to mark session-id flag as required: %v", err))
	}

	rootCmd.AddCommand(rankSessionCmd)
}

func runRankSession(cmd *cobra.Command, _ []string) error {
	override, err := minScoreOverride(cmd, sessionMinScore)
	if err != nil {
		return err
	}

	database, err := openDatabase(cmd.Context(), sessionDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	metricsFile := sessionMetricsFile
	if metricsFile == "" {
		metricsFile = appConfig.MetricsFile
	}

	result, err := pipeline.RunSession(cmd.Context(), database, sessionID, pipeline.SessionOptions{
		Scoring:     appConfig.ScoringConfig(),
		MinScore:    override,
		Concurrency: appConfig.Ranking.Concurrency,
		MetricsFile: metricsFile,
		Verbose:     verbose,
		Logger:      appLogger,
		Out:         cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("ranking session failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully stored %d candidates for session %s\n", len(result.Candidates), result.Session.ID)
	return nil
}

// openDatabase connects using the flag value, falling back to the configured URL
func openDatabase(ctx context.Context, flagURL string) (*db.DB, error) {
	databaseURL := flagURL
	if databaseURL == "" {
		databaseURL = appConfig.DatabaseURL
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set --db-url, database_url in config, or DATABASE_URL)")
	}

	database, err := db.Connect(ctx, databaseURL, db.WithLogger(appLogger))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	appLogger.Debug("connected to database")
	return database, nil
}

// zapSession tags log lines with the session being processed
func zapSession(id string) zap.Field {
	return zap.String("session_id", id)
}
