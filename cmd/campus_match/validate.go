package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/campus-match/internal/schemas"
	schemafiles "github.com/jonathan/campus-match/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a schema",
	Long: "Validate a JSON file against one of the embedded schemas (" + strings.Join(schemafiles.Names, ", ") +
		") or a schema file on disk.",
	RunE: runValidate,
}

var (
	validateSchemaName string
	validateSchemaFile string
	validateJSONFile   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaName, "schema", "s", "", "Name of an embedded schema")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema-file", "", "Path to a JSON Schema file")
	validateCmd.Flags().StringVarP(&validateJSONFile, "json", "j", "", "Path to the JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateSchemaName == "" && validateSchemaFile == "" {
		return fmt.Errorf("either --schema or --schema-file must be provided")
	}
	if validateSchemaName != "" && validateSchemaFile != "" {
		return fmt.Errorf("--schema and --schema-file are mutually exclusive; provide only one")
	}

	var err error
	if validateSchemaName != "" {
		err = schemas.ValidateFile(validateSchemaName, validateJSONFile)
	} else {
		err = schemas.ValidateJSON(validateSchemaFile, validateJSONFile)
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %d errors\n", len(validationErr.Errors))
		for _, fe := range validationErr.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s does not match the schema", validateJSONFile)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateJSONFile)
	return nil
}
