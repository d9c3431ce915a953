package steps

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{
		IngestJob, ParseJob, IngestResumes, ExtractCandidates,
		RankCandidates, ScoreDetailed, WriteArtifacts, WriteMetrics,
		LoadSession, ResolveJob, LoadStudents, RankStudents,
		StoreCandidates, LoadSessionPool, ComputeAnalytics,
	}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, StepRegistry, len(expectedSteps))
}

func TestStepRegistry_DependenciesAreRegistered(t *testing.T) {
	for name, def := range StepRegistry {
		for _, dep := range def.Dependencies {
			_, ok := StepRegistry[dep]
			assert.True(t, ok, "dependency %s of %s should be registered", dep, name)
		}
	}
}

func TestTracker_ValidateDependencies(t *testing.T) {
	tracker := NewTracker()

	assert.NoError(t, tracker.ValidateDependencies(IngestJob))

	err := tracker.ValidateDependencies(RankCandidates)
	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, RankCandidates, depErr.Step)
	assert.Equal(t, []string{ParseJob, ExtractCandidates}, depErr.MissingDependencies)
	assert.Contains(t, err.Error(), "missing dependencies")

	tracker.Complete(ParseJob)
	err = tracker.ValidateDependencies(RankCandidates)
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, []string{ExtractCandidates}, depErr.MissingDependencies)

	tracker.Complete(ExtractCandidates)
	assert.NoError(t, tracker.ValidateDependencies(RankCandidates))
	assert.True(t, tracker.Completed(ParseJob))
	assert.False(t, tracker.Completed(WriteArtifacts))
}

func TestTracker_UnknownStep(t *testing.T) {
	err := NewTracker().ValidateDependencies("unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestTracker_ConcurrentBranches(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for _, name := range []string{IngestJob, ParseJob, IngestResumes, ExtractCandidates} {
		wg.Add(1)
		go func(step string) {
			defer wg.Done()
			tracker.Complete(step)
		}(name)
	}
	wg.Wait()

	assert.NoError(t, tracker.ValidateDependencies(RankCandidates))
}
