// Package pipeline provides the high-level orchestration for batch matching runs:
// a directory of résumés against one job posting, or the student pool of a hiring session.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/campus-match/internal/extraction"
	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/metrics"
	"github.com/jonathan/campus-match/internal/observability"
	"github.com/jonathan/campus-match/internal/parsing"
	"github.com/jonathan/campus-match/internal/pipeline/steps"
	"github.com/jonathan/campus-match/internal/ranking"
	"github.com/jonathan/campus-match/internal/schemas"
	"github.com/jonathan/campus-match/internal/types"
	schemafiles "github.com/jonathan/campus-match/schemas"
)

// Artifact names written under the output directory
const (
	JobRequirementFile   = "job_requirement.json"
	RankedCandidatesFile = "ranked_candidates.json"
	CandidatesDir        = "candidates"
	MatchesDir           = "matches"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. Parallel branches
// may call it concurrently.
type ProgressCallback func(event ProgressEvent)

// emit calls the callback if configured
func (cb ProgressCallback) emit(step, message string, content any) {
	if cb == nil {
		return
	}
	cb(ProgressEvent{
		Step:     step,
		Category: steps.StepRegistry[step].Category,
		Message:  message,
		Content:  content,
	})
}

// RunOptions holds configuration for a directory run
type RunOptions struct {
	JobPath     string // Job description file; exclusive with JobURL
	JobURL      string
	ResumeDir   string
	OutputDir   string
	Scoring     ranking.Config // Zero value uses ranking.DefaultConfig()
	MinScore    *float64       // Nil uses Scoring.DefaultMinScore
	Concurrency int
	MetricsFile string // Prometheus textfile, empty disables
	Verbose     bool
	Logger      *zap.Logger
	Out         io.Writer // Step and summary output, defaults to stdout
	OnProgress  ProgressCallback
}

// RunResult holds everything a directory run produced
type RunResult struct {
	Job        *types.JobRequirement
	Candidates []*types.CandidateProfile
	Ranked     *types.RankedCandidates
	Matches    []*types.MatchResult
}

func (o *RunOptions) validate() error {
	switch {
	case o.JobPath == "" && o.JobURL == "":
		return &OptionsError{Field: "job", Message: "either a job file or a job URL is required"}
	case o.JobPath != "" && o.JobURL != "":
		return &OptionsError{Field: "job", Message: "job file and job URL are mutually exclusive"}
	case o.ResumeDir == "":
		return &OptionsError{Field: "resume_dir", Message: "a résumé directory is required"}
	case o.OutputDir == "":
		return &OptionsError{Field: "output_dir", Message: "an output directory is required"}
	}
	return nil
}

// Run ingests a job posting and a directory of résumés concurrently, extracts
// profiles, ranks them, and writes every artifact to opts.OutputDir.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	printer := observability.NewPrinter(out)

	matcher, err := newMatcher(opts.Scoring)
	if err != nil {
		return nil, err
	}
	minScore := resolveMinScore(opts.MinScore, matcher)
	collector := metrics.NewCollector()
	tracker := steps.NewTracker()

	fmt.Fprintf(out, "Step 1/4: Ingesting job posting and résumés...\n")

	var job *types.JobRequirement
	var candidates []*types.CandidateProfile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		parsed, err := runJobBranch(gctx, opts, collector, tracker)
		if err != nil {
			return err
		}
		job = parsed
		return nil
	})
	g.Go(func() error {
		extracted, err := runResumeBranch(gctx, opts, collector, tracker, logger)
		if err != nil {
			return err
		}
		candidates = extracted
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Verbose {
		printer.PrintJobRequirement(job)
	}

	fmt.Fprintf(out, "Step 2/4: Ranking %d candidates...\n", len(candidates))
	if err := tracker.ValidateDependencies(steps.RankCandidates); err != nil {
		return nil, err
	}
	ranker := ranking.NewRanker(matcher,
		ranking.WithLogger(logger),
		ranking.WithObserver(collector),
		ranking.WithConcurrency(opts.Concurrency))

	stop := collector.TimeStage(steps.RankCandidates)
	ranked, err := ranker.Rank(ctx, job, candidates, minScore)
	stop()
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	tracker.Complete(steps.RankCandidates)
	opts.OnProgress.emit(steps.RankCandidates,
		fmt.Sprintf("Ranked %d of %d candidates at or above %.0f", len(ranked.Ranked), len(candidates), minScore), ranked)
	if opts.Verbose {
		printer.PrintRankedCandidates(ranked)
	}

	fmt.Fprintf(out, "Step 3/4: Scoring ranked candidates in detail...\n")
	matches := scoreDetailed(matcher, job, candidates, ranked, logger)
	tracker.Complete(steps.ScoreDetailed)
	opts.OnProgress.emit(steps.ScoreDetailed, fmt.Sprintf("Scored %d candidates in detail", len(matches)), nil)

	fmt.Fprintf(out, "Step 4/4: Writing artifacts to %s...\n", opts.OutputDir)
	if err := tracker.ValidateDependencies(steps.WriteArtifacts); err != nil {
		return nil, err
	}
	result := &RunResult{Job: job, Candidates: candidates, Ranked: ranked, Matches: matches}
	if err := writeArtifacts(opts.OutputDir, result); err != nil {
		return nil, err
	}
	tracker.Complete(steps.WriteArtifacts)
	opts.OnProgress.emit(steps.WriteArtifacts, "Wrote artifacts to "+opts.OutputDir, nil)

	if opts.MetricsFile != "" {
		if err := tracker.ValidateDependencies(steps.WriteMetrics); err != nil {
			return nil, err
		}
		if err := collector.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", zap.String("path", opts.MetricsFile), zap.Error(err))
			fmt.Fprintf(out, "Warning: Failed to write metrics: %v\n", err)
		} else {
			tracker.Complete(steps.WriteMetrics)
		}
	}

	fmt.Fprintf(out, "✅ Ranked %d of %d candidates (%d skipped)\n", len(ranked.Ranked), len(candidates), ranked.Skipped)
	return result, nil
}

// runJobBranch ingests and parses the job posting
func runJobBranch(ctx context.Context, opts RunOptions, collector *metrics.Collector, tracker *steps.Tracker) (*types.JobRequirement, error) {
	var (
		text string
		meta *ingestion.Metadata
		err  error
	)
	if opts.JobURL != "" {
		text, meta, err = ingestion.IngestFromURL(ctx, opts.JobURL)
	} else {
		text, meta, err = ingestion.IngestFromFile(opts.JobPath)
	}
	if err != nil {
		return nil, fmt.Errorf("ingesting job failed: %w", err)
	}
	tracker.Complete(steps.IngestJob)
	opts.OnProgress.emit(steps.IngestJob, fmt.Sprintf("Ingested job posting (%d words)", meta.WordCount), meta)

	if err := tracker.ValidateDependencies(steps.ParseJob); err != nil {
		return nil, err
	}
	stop := collector.TimeStage(steps.ParseJob)
	job := parsing.ExtractJobRequirement(text)
	stop()
	collector.DocumentExtracted("job")
	tracker.Complete(steps.ParseJob)
	opts.OnProgress.emit(steps.ParseJob,
		fmt.Sprintf("Parsed job requirement with %d required skills", len(job.RequiredSkills)), job)

	return job, nil
}

// runResumeBranch ingests every supported file in the résumé directory and
// extracts a profile from each. Files that fail to ingest are logged and skipped;
// duplicate résumés keep the first file.
func runResumeBranch(ctx context.Context, opts RunOptions, collector *metrics.Collector, tracker *steps.Tracker, logger *zap.Logger) ([]*types.CandidateProfile, error) {
	paths, err := listResumes(opts.ResumeDir)
	if err != nil {
		return nil, err
	}
	tracker.Complete(steps.IngestResumes)
	opts.OnProgress.emit(steps.IngestResumes, fmt.Sprintf("Found %d résumé files", len(paths)), paths)

	if err := tracker.ValidateDependencies(steps.ExtractCandidates); err != nil {
		return nil, err
	}
	stop := collector.TimeStage(steps.ExtractCandidates)
	defer stop()

	profiles := make([]*types.CandidateProfile, len(paths))

	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, _, err := ingestion.IngestFromFile(path)
			if err != nil {
				logger.Warn("skipping résumé", zap.String("path", path), zap.Error(err))
				return nil
			}
			profile := extraction.ExtractCandidateProfile(text)
			collector.DocumentExtracted("resume")
			if profile.ID == "" {
				logger.Warn("skipping empty résumé", zap.String("path", path))
				return nil
			}
			profiles[i] = profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extracting résumés cancelled: %w", err)
	}

	seen := make(map[string]string, len(profiles))
	candidates := make([]*types.CandidateProfile, 0, len(profiles))
	for i, profile := range profiles {
		if profile == nil {
			continue
		}
		if first, ok := seen[profile.ID]; ok {
			logger.Warn("skipping duplicate résumé",
				zap.String("path", paths[i]),
				zap.String("duplicate_of", first))
			continue
		}
		seen[profile.ID] = paths[i]
		candidates = append(candidates, profile)
	}

	tracker.Complete(steps.ExtractCandidates)
	opts.OnProgress.emit(steps.ExtractCandidates, fmt.Sprintf("Extracted %d candidate profiles", len(candidates)), nil)
	return candidates, nil
}

// listResumes returns the supported files of dir in name order
func listResumes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !ingestion.IsSupported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, &OptionsError{Field: "resume_dir", Message: fmt.Sprintf("no supported résumé files in %s", dir)}
	}
	return paths, nil
}

// scoreDetailed computes the full match breakdown of every ranked candidate, in rank order
func scoreDetailed(matcher *ranking.Matcher, job *types.JobRequirement, candidates []*types.CandidateProfile, ranked *types.RankedCandidates, logger *zap.Logger) []*types.MatchResult {
	byRef := make(map[string]*types.CandidateProfile, len(candidates))
	for _, c := range candidates {
		byRef[c.Ref()] = c
	}

	matches := make([]*types.MatchResult, 0, len(ranked.Ranked))
	for _, r := range ranked.Ranked {
		candidate, ok := byRef[r.CandidateRef]
		if !ok {
			continue
		}
		result, err := matcher.ScoreMatchDetailed(candidate, job)
		if err != nil {
			logger.Warn("detailed scoring failed", zap.String("candidate", r.CandidateRef), zap.Error(err))
			continue
		}
		matches = append(matches, result)
	}
	return matches
}

// writeArtifacts validates each artifact against its schema and writes it as indented JSON
func writeArtifacts(dir string, result *RunResult) error {
	for _, sub := range []string{CandidatesDir, MatchesDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := writeJSON(filepath.Join(dir, JobRequirementFile), schemafiles.JobRequirement, result.Job); err != nil {
		return err
	}
	for _, c := range result.Candidates {
		if err := writeJSON(filepath.Join(dir, CandidatesDir, c.Ref()+".json"), schemafiles.CandidateProfile, c); err != nil {
			return err
		}
	}
	if err := writeJSON(filepath.Join(dir, RankedCandidatesFile), schemafiles.RankedCandidates, result.Ranked); err != nil {
		return err
	}
	for _, m := range result.Matches {
		if err := writeJSON(filepath.Join(dir, MatchesDir, m.CandidateRef+".json"), schemafiles.MatchResult, m); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path, schema string, v any) error {
	if err := schemas.ValidateValue(schema, v); err != nil {
		return fmt.Errorf("invalid %s artifact: %w", schema, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", schema, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// newMatcher builds a matcher, using the default weights when none are configured
func newMatcher(cfg ranking.Config) (*ranking.Matcher, error) {
	if cfg == (ranking.Config{}) {
		return ranking.DefaultMatcher(), nil
	}
	matcher, err := ranking.NewMatcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return matcher, nil
}

func resolveMinScore(minScore *float64, matcher *ranking.Matcher) float64 {
	if minScore != nil {
		return *minScore
	}
	return matcher.Config().DefaultMinScore
}
