package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/campus-match/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var setStatusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "Move session candidates through the hiring pipeline",
	Long: "Set the status of one or more session candidates to applied, shortlisted, waitlisted, hired or rejected, " +
		"optionally with recruiter notes. Repeat --candidate-id to update several candidates in one transaction. " +
		"Moving a candidate to hired counts toward the session's hires.",
	RunE: runSetStatus,
}

var (
	statusCandidateIDs []string
	statusValue        string
	statusNotes        string
	statusDatabaseURL  string
)

func init() {
	setStatusCmd.Flags().StringSliceVar(&statusCandidateIDs, "candidate-id", nil, "Session candidate ID, repeatable or comma-separated (required)")
	setStatusCmd.Flags().StringVar(&statusValue, "status", "", "New status: "+strings.Join(types.CandidateStatuses, ", ")+" (required)")
	setStatusCmd.Flags().StringVar(&statusNotes, "notes", "", "Recruiter notes")
	setStatusCmd.Flags().StringVar(&statusDatabaseURL, "db-url", "", "Database URL (defaults to database_url from config or DATABASE_URL)")

	if err := setStatusCmd.MarkFlagRequired("candidate-id"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate-id flag as required: %v", err))
	}
	if err := setStatusCmd.MarkFlagRequired("status"); err != nil {
		panic(fmt.Sprintf("failed to mark status flag as required: %v", err))
	}

	rootCmd.AddCommand(setStatusCmd)
}

func runSetStatus(cmd *cobra.Command, _ []string) error {
	updates, err := buildStatusUpdates(statusCandidateIDs, statusValue, statusNotes)
	if err != nil {
		return fmt.Errorf("invalid status update: %w", err)
	}

	database, err := openDatabase(cmd.Context(), statusDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.UpdateCandidateStatuses(cmd.Context(), updates); err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, update := range updates {
		appLogger.Info("candidate status updated",
			zap.String("candidate_id", update.CandidateID),
			zap.String("status", update.Status))
		fmt.Fprintf(out, "Successfully set candidate %s to %s\n", update.CandidateID, update.Status)
	}
	return nil
}

// buildStatusUpdates makes one validated update per distinct candidate ID
func buildStatusUpdates(candidateIDs []string, status, notes string) ([]*types.StatusUpdate, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	seen := make(map[string]bool, len(candidateIDs))
	updates := make([]*types.StatusUpdate, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		update := &types.StatusUpdate{CandidateID: id, Status: status, Notes: notes}
		if err := update.Validate(); err != nil {
			return nil, fmt.Errorf("candidate %s: %w", id, err)
		}
		updates = append(updates, update)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("at least one candidate ID is required")
	}
	return updates, nil
}
