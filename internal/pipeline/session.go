package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/campus-match/internal/analytics"
	"github.com/jonathan/campus-match/internal/db"
	"github.com/jonathan/campus-match/internal/metrics"
	"github.com/jonathan/campus-match/internal/observability"
	"github.com/jonathan/campus-match/internal/parsing"
	"github.com/jonathan/campus-match/internal/pipeline/steps"
	"github.com/jonathan/campus-match/internal/ranking"
	"github.com/jonathan/campus-match/internal/types"
)

// SessionStore is the persistence a session run needs. *db.DB satisfies it.
type SessionStore interface {
	GetHiringSession(ctx context.Context, id string) (*types.HiringSession, error)
	SaveHiringSessionRequirements(ctx context.Context, sessionID string, job *types.JobRequirement) error
	ListStudents(ctx context.Context) ([]*types.CandidateProfile, error)
	GetStudent(ctx context.Context, id string) (*types.CandidateProfile, error)
	UpsertSessionCandidate(ctx context.Context, sessionID, studentID string, score float64) (*types.SessionCandidate, error)
	ListSessionCandidates(ctx context.Context, sessionID string) ([]types.SessionCandidate, error)
}

var _ SessionStore = (*db.DB)(nil)

// SessionOptions holds configuration for a hiring-session run
type SessionOptions struct {
	Scoring     ranking.Config // Zero value uses ranking.DefaultConfig()
	MinScore    *float64       // Nil uses Scoring.DefaultMinScore
	Concurrency int
	MetricsFile string
	Verbose     bool
	Logger      *zap.Logger
	Out         io.Writer
	OnProgress  ProgressCallback
}

// SessionResult holds the outcome of a session run
type SessionResult struct {
	Session    *types.HiringSession
	Ranked     *types.RankedCandidates
	Candidates []types.SessionCandidate
	// RequirementsExtracted is set when the requirement was parsed from the description during this run
	RequirementsExtracted bool
}

func (o *SessionOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *SessionOptions) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// RunSession ranks the student pool against a hiring session and stores a
// session candidate for every student at or above the threshold. A session
// without stored requirements has them extracted from its description and saved.
func RunSession(ctx context.Context, store SessionStore, sessionID string, opts SessionOptions) (*SessionResult, error) {
	logger := opts.logger()
	out := opts.out()
	printer := observability.NewPrinter(out)
	tracker := steps.NewTracker()
	collector := metrics.NewCollector()

	matcher, err := newMatcher(opts.Scoring)
	if err != nil {
		return nil, err
	}
	minScore := resolveMinScore(opts.MinScore, matcher)

	fmt.Fprintf(out, "Step 1/4: Loading hiring session %s...\n", sessionID)
	session, err := store.GetHiringSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session failed: %w", err)
	}
	tracker.Complete(steps.LoadSession)
	opts.OnProgress.emit(steps.LoadSession, fmt.Sprintf("Loaded session %q", session.Title), session)

	extracted, err := resolveRequirements(ctx, store, session)
	if err != nil {
		return nil, err
	}
	tracker.Complete(steps.ResolveJob)
	if extracted {
		logger.Info("extracted session requirements from description",
			zap.String("session_id", session.ID),
			zap.Int("required_skills", len(session.Requirements.RequiredSkills)))
		collector.DocumentExtracted("job")
		opts.OnProgress.emit(steps.ResolveJob, "Extracted requirements from the session description", session.Requirements)
	}
	if opts.Verbose {
		printer.PrintJobRequirement(session.Requirements)
	}

	fmt.Fprintf(out, "Step 2/4: Loading students...\n")
	students, err := store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading students failed: %w", err)
	}
	tracker.Complete(steps.LoadStudents)
	opts.OnProgress.emit(steps.LoadStudents, fmt.Sprintf("Loaded %d students", len(students)), nil)

	fmt.Fprintf(out, "Step 3/4: Ranking %d students...\n", len(students))
	if err := tracker.ValidateDependencies(steps.RankStudents); err != nil {
		return nil, err
	}
	ranker := ranking.NewRanker(matcher,
		ranking.WithLogger(logger),
		ranking.WithObserver(collector),
		ranking.WithConcurrency(opts.Concurrency))
	stop := collector.TimeStage(steps.RankStudents)
	ranked, err := ranker.Rank(ctx, session.Requirements, students, minScore)
	stop()
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	tracker.Complete(steps.RankStudents)
	opts.OnProgress.emit(steps.RankStudents,
		fmt.Sprintf("Ranked %d of %d students at or above %.0f", len(ranked.Ranked), len(students), minScore), ranked)
	if opts.Verbose {
		printer.PrintRankedCandidates(ranked)
	}

	fmt.Fprintf(out, "Step 4/4: Storing %d session candidates...\n", len(ranked.Ranked))
	if err := tracker.ValidateDependencies(steps.StoreCandidates); err != nil {
		return nil, err
	}
	stored := make([]types.SessionCandidate, 0, len(ranked.Ranked))
	for _, r := range ranked.Ranked {
		c, err := store.UpsertSessionCandidate(ctx, session.ID, r.CandidateRef, r.Score)
		if err != nil {
			return nil, fmt.Errorf("storing candidate failed: %w", err)
		}
		stored = append(stored, *c)
	}
	tracker.Complete(steps.StoreCandidates)
	opts.OnProgress.emit(steps.StoreCandidates, fmt.Sprintf("Stored %d session candidates", len(stored)), stored)

	if opts.MetricsFile != "" {
		if err := collector.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", zap.String("path", opts.MetricsFile), zap.Error(err))
			fmt.Fprintf(out, "Warning: Failed to write metrics: %v\n", err)
		}
	}

	fmt.Fprintf(out, "✅ Session %s: %d of %d students shortlisted for review (%d skipped)\n",
		session.ID, len(stored), len(students), ranked.Skipped)

	return &SessionResult{
		Session:               session,
		Ranked:                ranked,
		Candidates:            stored,
		RequirementsExtracted: extracted,
	}, nil
}

// resolveRequirements makes sure session.Requirements is set, extracting and
// saving it from the description when the session has none. It reports whether
// an extraction happened.
func resolveRequirements(ctx context.Context, store SessionStore, session *types.HiringSession) (bool, error) {
	if session.Requirements != nil {
		return false, nil
	}
	if strings.TrimSpace(session.Description) == "" {
		return false, &SessionError{SessionID: session.ID, Message: "session has neither requirements nor a description"}
	}

	job := parsing.ExtractJobRequirement(session.Description)
	job.ID = session.ID
	if job.Title == "" {
		job.Title = session.Title
	}
	if job.Role == "" {
		job.Role = session.Role
	}

	if err := store.SaveHiringSessionRequirements(ctx, session.ID, job); err != nil {
		return false, &SessionError{SessionID: session.ID, Message: "failed to save extracted requirements", Cause: err}
	}
	session.Requirements = job
	return true, nil
}

// SessionAnalytics loads a session's candidates with their student profiles and
// computes the pipeline analytics. Candidates whose student record is gone are
// still counted, without profile statistics.
func SessionAnalytics(ctx context.Context, store SessionStore, sessionID string, logger *zap.Logger) (*types.SessionAnalytics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tracker := steps.NewTracker()

	session, err := store.GetHiringSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session failed: %w", err)
	}
	tracker.Complete(steps.LoadSession)

	if err := tracker.ValidateDependencies(steps.LoadSessionPool); err != nil {
		return nil, err
	}
	candidates, err := store.ListSessionCandidates(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session candidates failed: %w", err)
	}

	entries := make([]analytics.Entry, 0, len(candidates))
	for _, c := range candidates {
		profile, err := store.GetStudent(ctx, c.StudentID)
		if err != nil {
			var notFound *db.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("loading student failed: %w", err)
			}
			logger.Warn("session candidate has no student record",
				zap.String("session_id", sessionID),
				zap.String("student_id", c.StudentID))
			profile = nil
		}
		entries = append(entries, analytics.Entry{Candidate: c, Profile: profile})
	}
	tracker.Complete(steps.LoadSessionPool)

	if err := tracker.ValidateDependencies(steps.ComputeAnalytics); err != nil {
		return nil, err
	}
	return analytics.Compute(session, entries), nil
}
