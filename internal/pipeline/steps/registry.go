// Package steps provides step definitions and dependency tracking for the
// directory and hiring-session pipelines.
package steps

import (
	"fmt"
	"sync"
)

// Step categories
const (
	CategoryIngestion = "ingestion"
	CategoryMatching  = "matching"
	CategoryOutput    = "output"
	CategorySession   = "session"
)

// Step names
const (
	IngestJob         = "ingest_job"
	ParseJob          = "parse_job"
	IngestResumes     = "ingest_resumes"
	ExtractCandidates = "extract_candidates"
	RankCandidates    = "rank_candidates"
	ScoreDetailed     = "score_detailed"
	WriteArtifacts    = "write_artifacts"
	WriteMetrics      = "write_metrics"

	LoadSession      = "load_session"
	ResolveJob       = "resolve_requirements"
	LoadStudents     = "load_students"
	RankStudents     = "rank_students"
	StoreCandidates  = "store_candidates"
	LoadSessionPool  = "load_session_pool"
	ComputeAnalytics = "compute_analytics"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	IngestJob:         {Name: IngestJob, Category: CategoryIngestion},
	ParseJob:          {Name: ParseJob, Category: CategoryIngestion, Dependencies: []string{IngestJob}},
	IngestResumes:     {Name: IngestResumes, Category: CategoryIngestion},
	ExtractCandidates: {Name: ExtractCandidates, Category: CategoryIngestion, Dependencies: []string{IngestResumes}},
	RankCandidates:    {Name: RankCandidates, Category: CategoryMatching, Dependencies: []string{ParseJob, ExtractCandidates}},
	ScoreDetailed:     {Name: ScoreDetailed, Category: CategoryMatching, Dependencies: []string{RankCandidates}},
	WriteArtifacts:    {Name: WriteArtifacts, Category: CategoryOutput, Dependencies: []string{ScoreDetailed}},
	WriteMetrics:      {Name: WriteMetrics, Category: CategoryOutput, Dependencies: []string{RankCandidates}},

	LoadSession:      {Name: LoadSession, Category: CategorySession},
	ResolveJob:       {Name: ResolveJob, Category: CategorySession, Dependencies: []string{LoadSession}},
	LoadStudents:     {Name: LoadStudents, Category: CategorySession},
	RankStudents:     {Name: RankStudents, Category: CategoryMatching, Dependencies: []string{ResolveJob, LoadStudents}},
	StoreCandidates:  {Name: StoreCandidates, Category: CategorySession, Dependencies: []string{RankStudents}},
	LoadSessionPool:  {Name: LoadSessionPool, Category: CategorySession, Dependencies: []string{LoadSession}},
	ComputeAnalytics: {Name: ComputeAnalytics, Category: CategoryMatching, Dependencies: []string{LoadSessionPool}},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Tracker records completed steps of one run. It is safe for concurrent use
// so parallel branches can report into the same tracker.
type Tracker struct {
	mu        sync.Mutex
	completed map[string]bool
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// ValidateDependencies checks if all required dependencies for a step are completed
func (t *Tracker) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var missing []string
	for _, dep := range def.Dependencies {
		if !t.completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: stepName, MissingDependencies: missing}
	}
	return nil
}

// Complete marks a step as done
func (t *Tracker) Complete(stepName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed[stepName] = true
}

// Completed reports whether a step has finished
func (t *Tracker) Completed(stepName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed[stepName]
}
