package main

import (
	"fmt"

	"github.com/jonathan/campus-match/internal/observability"
	"github.com/jonathan/campus-match/internal/pipeline"
	"github.com/spf13/cobra"
)

var sessionAnalyticsCmd = &cobra.Command{
	Use:   "session-analytics",
	Short: "Summarize the candidate pipeline of a hiring session",
	Long: "Compute status, match-score, year, department, skill and academic distributions for a hiring session, " +
		"with conversion rates and top performers.",
	RunE: runSessionAnalytics,
}

var (
	analyticsSessionID   string
	analyticsDatabaseURL string
	analyticsOutput      string
)

func init() {
	sessionAnalyticsCmd.Flags().StringVarP(&analyticsSessionID, "session-id", "s", "", "Hiring session ID (required)")
	sessionAnalyticsCmd.Flags().StringVar(&analyticsDatabaseURL, "db-url", "", "Database URL (defaults to database_url from config or DATABASE_URL)")
	sessionAnalyticsCmd.Flags().StringVarP(&analyticsOutput, "out", "o", "", "Path to output SessionAnalytics JSON file")

	if err := sessionAnalyticsCmd.MarkFlagRequired("session-id"); err != nil {
		panic(fmt.Sprintf("failed to mark session-id flag as required: %v", err))
	}

	rootCmd.AddCommand(sessionAnalyticsCmd)
}

func runSessionAnalytics(cmd *cobra.Command, _ []string) error {
	database, err := openDatabase(cmd.Context(), analyticsDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	analytics, err := pipeline.SessionAnalytics(cmd.Context(), database, analyticsSessionID, appLogger.With(zapSession(analyticsSessionID)))
	if err != nil {
		return fmt.Errorf("failed to compute session analytics: %w", err)
	}

	if analyticsOutput != "" {
		if err := writeJSONFile(analyticsOutput, "", analytics); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote session analytics to %s\n", analyticsOutput)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSessionAnalytics(analytics)
	return nil
}
