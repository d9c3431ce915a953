package main

import (
	"fmt"
	"os"

	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/logger"
	"github.com/jonathan/campus-match/internal/observability"
	"github.com/jonathan/campus-match/internal/parsing"
	schemafiles "github.com/jonathan/campus-match/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractJobCmd = &cobra.Command{
	Use:   "extract-job",
	Short: "Extract eligibility requirements from a job description",
	Long: "Extract required skills, education, experience years, a CGPA minimum, specific requirements and eligible " +
		"academic years from a job description file or URL into JobRequirement JSON.",
	RunE: runExtractJob,
}

var (
	jobTextFile string
	jobURL      string
	jobOutput   string
	jobMetaOut  string
)

func init() {
	extractJobCmd.Flags().StringVarP(&jobTextFile, "file", "f", "", "Path to job description file (.txt, .md, .html or .pdf)")
	extractJobCmd.Flags().StringVarP(&jobURL, "url", "u", "", "URL to fetch the job posting from")
	extractJobCmd.Flags().StringVarP(&jobOutput, "out", "o", "", "Path to output JobRequirement JSON file (required)")
	extractJobCmd.Flags().StringVar(&jobMetaOut, "meta", "", "Path to write ingestion metadata JSON (source, hash, word count)")

	if err := extractJobCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractJobCmd)
}

func runExtractJob(cmd *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if jobTextFile == "" && jobURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if jobTextFile != "" && jobURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	var (
		text     string
		metadata *ingestion.Metadata
		err      error
	)
	if jobTextFile != "" {
		text, metadata, err = ingestion.IngestFromFile(jobTextFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	} else {
		text, metadata, err = ingestion.IngestFromURL(cmd.Context(), jobURL)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}
	appLogger.Debug("ingested job posting",
		zap.String("source", metadata.Source),
		zap.String("hash", metadata.Hash),
		zap.Int("words", metadata.WordCount),
		zap.String("excerpt", logger.Excerpt(text, 80)))

	job := parsing.ExtractJobRequirement(text)

	if err := writeJSONFile(jobOutput, schemafiles.JobRequirement, job); err != nil {
		return err
	}

	if jobMetaOut != "" {
		metaJSON, err := metadata.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(jobMetaOut, metaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write metadata file %s: %w", jobMetaOut, err)
		}
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintJobRequirement(job)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully extracted job requirement with %d required skills to %s\n", len(job.RequiredSkills), jobOutput)
	return nil
}
