package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"

	"github.com/jonathan/campus-match/internal/types"
	"github.com/jonathan/campus-match/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scorer computes the overall score of one candidate against one job
type Scorer interface {
	ScoreMatch(candidate *types.CandidateProfile, job *types.JobRequirement) (float64, error)
}

// Observer receives ranking events, such as a metrics collector
type Observer interface {
	CandidateScored(score float64)
	CandidateSkipped()
}

// Ranker scores a candidate pool against one job and keeps those above a threshold
type Ranker struct {
	scorer      Scorer
	logger      *zap.Logger
	observer    Observer
	concurrency int
}

// Option configures a Ranker
type Option func(*Ranker)

// WithLogger sets the logger used to report skipped candidates
func WithLogger(logger *zap.Logger) Option {
	return func(r *Ranker) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency bounds the number of candidates scored at once. Zero or less uses GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithObserver registers an observer for scoring events
func WithObserver(observer Observer) Option {
	return func(r *Ranker) {
		r.observer = observer
	}
}

// NewRanker creates a Ranker around a scorer
func NewRanker(scorer Scorer, opts ...Option) *Ranker {
	r := &Ranker{
		scorer:      scorer,
		logger:      zap.NewNop(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// scored is the outcome for one candidate, kept at the candidate's input index
type scored struct {
	ref   string
	score float64
	ok    bool
}

// Rank scores every candidate, skips those whose scoring fails, keeps the ones
// scoring at least minScore and sorts them by score, highest first. Ties keep input order.
// ctx bounds the whole batch; it is checked before each candidate is scored.
func (r *Ranker) Rank(ctx context.Context, job *types.JobRequirement, candidates []*types.CandidateProfile, minScore float64) (*types.RankedCandidates, error) {
	if job == nil {
		return nil, &validation.InvalidInputError{Field: "job", Message: "job requirement is nil"}
	}

	results := make([]scored, len(candidates))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.scoreOne(i, candidate, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ranking cancelled: %w", err)
	}

	ranked := &types.RankedCandidates{
		JobID:    job.ID,
		MinScore: minScore,
		Ranked:   []types.RankedCandidate{},
	}
	for _, res := range results {
		if !res.ok {
			ranked.Skipped++
			continue
		}
		if res.score < minScore {
			continue
		}
		ranked.Ranked = append(ranked.Ranked, types.RankedCandidate{
			CandidateRef: res.ref,
			Score:        res.score,
			Label:        MatchLabel(res.score),
		})
	}

	sort.SliceStable(ranked.Ranked, func(i, j int) bool {
		return ranked.Ranked[i].Score > ranked.Ranked[j].Score
	})

	r.logger.Debug("ranked candidates",
		zap.String("job_id", job.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(ranked.Ranked)),
		zap.Int("skipped", ranked.Skipped),
		zap.Float64("min_score", minScore))

	return ranked, nil
}

// RankCandidates is Rank returning only the ranked list
func (r *Ranker) RankCandidates(ctx context.Context, job *types.JobRequirement, candidates []*types.CandidateProfile, minScore float64) ([]types.RankedCandidate, error) {
	ranked, err := r.Rank(ctx, job, candidates, minScore)
	if err != nil {
		return nil, err
	}
	return ranked.Ranked, nil
}

// scoreOne scores a single candidate, turning an error or a panic into a skip
func (r *Ranker) scoreOne(index int, candidate *types.CandidateProfile, job *types.JobRequirement) (res scored) {
	res.ref = candidateRef(index, candidate)

	defer func() {
		if p := recover(); p != nil {
			r.skip(res.ref, &ScoringError{CandidateRef: res.ref, Message: fmt.Sprintf("panic: %v", p)})
			res.ok = false
		}
	}()

	score, err := r.scorer.ScoreMatch(candidate, job)
	if err != nil {
		r.skip(res.ref, &ScoringError{CandidateRef: res.ref, Message: "scoring failed", Cause: err})
		return res
	}

	res.score = score
	res.ok = true
	if r.observer != nil {
		r.observer.CandidateScored(score)
	}
	return res
}

func (r *Ranker) skip(ref string, err error) {
	r.logger.Warn("skipping candidate", zap.String("candidate", ref), zap.Error(err))
	if r.observer != nil {
		r.observer.CandidateSkipped()
	}
}

// candidateRef identifies a candidate in the output, falling back to its input position
func candidateRef(index int, candidate *types.CandidateProfile) string {
	if candidate != nil {
		if ref := candidate.Ref(); ref != "" {
			return ref
		}
	}
	return "candidate-" + strconv.Itoa(index+1)
}
