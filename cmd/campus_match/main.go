// Package main implements the campus_match CLI for résumé extraction, job parsing
// and candidate ranking.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/campus-match/internal/config"
	"github.com/jonathan/campus-match/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "campus_match",
	Short: "Campus recruitment matching CLI",
	Long: "campus_match extracts candidate profiles from résumés and eligibility requirements from job descriptions, " +
		"scores candidates against jobs, ranks candidate pools and runs hiring sessions stored in PostgreSQL.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

var (
	cfgFile  string
	verbose  bool
	jsonLogs bool

	// Set by setupRuntime before any command runs
	appConfig = config.Defaults()
	appLogger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed summaries and debug logs")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")
}

// setupRuntime loads the configuration and builds the logger. Flags override
// CAMPUS_MATCH_* environment variables, which override the config file.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlag("log.debug", cmd.Flags().Lookup("verbose")); err != nil {
		return fmt.Errorf("failed to bind verbose flag: %w", err)
	}
	if err := v.BindPFlag("log.json", cmd.Flags().Lookup("json-logs")); err != nil {
		return fmt.Errorf("failed to bind json-logs flag: %w", err)
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return err
	}

	log, err := logger.New(merged.Log.JSON, merged.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	appConfig = merged
	appLogger = log
	log.Debug("configuration loaded", zap.String("config_file", cfgFile), zap.String("output_dir", merged.OutputDir))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = appLogger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
