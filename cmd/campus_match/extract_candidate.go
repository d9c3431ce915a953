package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/campus-match/internal/extraction"
	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/logger"
	"github.com/jonathan/campus-match/internal/observability"
	"github.com/jonathan/campus-match/internal/types"
	schemafiles "github.com/jonathan/campus-match/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCandidateCmd = &cobra.Command{
	Use:   "extract-candidate",
	Short: "Extract a candidate profile from a résumé",
	Long: "Extract skills, academic scores, projects, experience, internship status and an ATS score from a résumé " +
		"(.txt, .md, .html or .pdf) into CandidateProfile JSON. Student record fields can be supplied with flags.",
	RunE: runExtractCandidate,
}

var (
	candidateResume     string
	candidateOutput     string
	candidateID         string
	candidateYear       int
	candidateGPA        string
	candidateDepartment string
)

func init() {
	extractCandidateCmd.Flags().StringVarP(&candidateResume, "resume", "r", "", "Path to résumé file (required)")
	extractCandidateCmd.Flags().StringVarP(&candidateOutput, "out", "o", "", "Path to output CandidateProfile JSON file (required)")
	extractCandidateCmd.Flags().StringVar(&candidateID, "id", "", "Candidate ID (defaults to an ID derived from the résumé text)")
	extractCandidateCmd.Flags().IntVar(&candidateYear, "year", 0, "Academic year of the student, 1-4")
	extractCandidateCmd.Flags().StringVar(&candidateGPA, "gpa", "", "GPA as recorded by the institution, e.g. 8.2 or 8.2/10")
	extractCandidateCmd.Flags().StringVar(&candidateDepartment, "department", "", "Department of the student")

	if err := extractCandidateCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := extractCandidateCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCandidateCmd)
}

func runExtractCandidate(cmd *cobra.Command, _ []string) error {
	if candidateYear < 0 || candidateYear > 4 {
		return fmt.Errorf("--year must be 0 (unknown) or between 1 and 4, got %d", candidateYear)
	}

	text, metadata, err := ingestion.IngestFromFile(candidateResume)
	if err != nil {
		return fmt.Errorf("failed to ingest résumé: %w", err)
	}
	appLogger.Debug("ingested résumé",
		zap.String("path", candidateResume),
		zap.String("format", string(metadata.Format)),
		zap.Int("words", metadata.WordCount),
		zap.String("excerpt", logger.Excerpt(text, 80)))

	profile := extraction.ExtractCandidateProfile(text)
	applyStudentFields(profile)

	if err := writeJSONFile(candidateOutput, schemafiles.CandidateProfile, profile); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintCandidateProfile(profile)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully extracted candidate profile with %d skills to %s\n", len(profile.Skills), candidateOutput)
	return nil
}

// applyStudentFields copies the student record flags onto an extracted profile
func applyStudentFields(profile *types.CandidateProfile) {
	if candidateID != "" {
		profile.ID = candidateID
	}
	profile.Year = candidateYear
	profile.GPA = strings.TrimSpace(candidateGPA)
	profile.Department = strings.TrimSpace(candidateDepartment)
}
