package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jonathan/campus-match/internal/db"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeStore keeps sessions, students and session candidates in memory
type fakeStore struct {
	sessions    map[string]*types.HiringSession
	students    []*types.CandidateProfile
	candidates  map[string][]types.SessionCandidate
	saved       map[string]*types.JobRequirement
	upserts     []types.SessionCandidate
	studentsErr error
	saveErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:   map[string]*types.HiringSession{},
		candidates: map[string][]types.SessionCandidate{},
		saved:      map[string]*types.JobRequirement{},
	}
}

func (s *fakeStore) GetHiringSession(_ context.Context, id string) (*types.HiringSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, &db.NotFoundError{Entity: "hiring session", ID: id}
	}
	copied := *session
	return &copied, nil
}

func (s *fakeStore) SaveHiringSessionRequirements(_ context.Context, sessionID string, job *types.JobRequirement) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[sessionID] = job
	return nil
}

func (s *fakeStore) ListStudents(context.Context) ([]*types.CandidateProfile, error) {
	if s.studentsErr != nil {
		return nil, s.studentsErr
	}
	return s.students, nil
}

func (s *fakeStore) GetStudent(_ context.Context, id string) (*types.CandidateProfile, error) {
	for _, student := range s.students {
		if student.ID == id {
			return student, nil
		}
	}
	return nil, &db.NotFoundError{Entity: "student", ID: id}
}

func (s *fakeStore) UpsertSessionCandidate(_ context.Context, sessionID, studentID string, score float64) (*types.SessionCandidate, error) {
	c := types.SessionCandidate{
		ID:         "sc-" + studentID,
		SessionID:  sessionID,
		StudentID:  studentID,
		MatchScore: score,
		Status:     types.StatusApplied,
	}
	s.upserts = append(s.upserts, c)
	return &c, nil
}

func (s *fakeStore) ListSessionCandidates(_ context.Context, sessionID string) ([]types.SessionCandidate, error) {
	return s.candidates[sessionID], nil
}

func sessionStudents() []*types.CandidateProfile {
	return []*types.CandidateProfile{
		{ID: "s1", Skills: []string{"Python", "SQL"}, Year: 4, GPA: "8.4", Department: "CSE", HasInternship: true, ATSScore: 80},
		{ID: "s2", Skills: []string{"Python"}, Year: 3, GPA: "7.1", Department: "ECE", ATSScore: 60},
		{ID: "s3", Skills: []string{"Figma"}, Year: 2, Department: "Design", ATSScore: 40},
	}
}

func studentIDs(candidates []types.SessionCandidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.StudentID
	}
	return ids
}

func TestRunSession_ExtractsRequirementsAndStoresCandidates(t *testing.T) {
	store := newFakeStore()
	store.sessions["sess-1"] = &types.HiringSession{
		ID:          "sess-1",
		Title:       "Analyst Intern",
		Role:        "Data",
		Description: "Analyst Intern\nRequired: Python, SQL.",
		TargetHires: 2,
		Status:      "active",
	}
	store.students = sessionStudents()

	var events []string
	result, err := RunSession(context.Background(), store, "sess-1", SessionOptions{
		MinScore: minScore(0),
		Out:      &bytes.Buffer{},
		OnProgress: func(event ProgressEvent) {
			events = append(events, event.Step)
		},
	})
	require.NoError(t, err)

	assert.True(t, result.RequirementsExtracted)
	saved, ok := store.saved["sess-1"]
	require.True(t, ok)
	assert.Equal(t, "sess-1", saved.ID)
	assert.Equal(t, "Data", saved.Role)
	assert.Subset(t, saved.RequiredSkills, []string{"Python", "SQL"})
	assert.Same(t, saved, result.Session.Requirements)

	assert.Equal(t, []string{"s1", "s2", "s3"}, studentIDs(result.Candidates))
	assert.Equal(t, result.Candidates, store.upserts)
	assert.Equal(t, "sess-1", result.Ranked.JobID)
	assert.Greater(t, result.Candidates[0].MatchScore, result.Candidates[1].MatchScore)
	assert.Greater(t, result.Candidates[1].MatchScore, result.Candidates[2].MatchScore)

	assert.Contains(t, events, "resolve_requirements")
	assert.Contains(t, events, "store_candidates")
}

func TestRunSession_StoredRequirementsAndThreshold(t *testing.T) {
	store := newFakeStore()
	store.sessions["sess-2"] = &types.HiringSession{
		ID: "sess-2",
		Requirements: &types.JobRequirement{
			ID:             "sess-2",
			RequiredSkills: []string{"Python", "SQL"},
			Eligibility:    types.Eligibility{EligibleYears: []int{1, 2, 3, 4}},
		},
	}
	store.students = sessionStudents()
	var out bytes.Buffer

	result, err := RunSession(context.Background(), store, "sess-2", SessionOptions{
		MinScore: minScore(90),
		Verbose:  true,
		Out:      &out,
	})
	require.NoError(t, err)

	assert.False(t, result.RequirementsExtracted)
	assert.Empty(t, store.saved)
	// s1 matches every skill, s2 half of them: 0.4*50 + 60 = 80
	assert.Equal(t, []string{"s1"}, studentIDs(result.Candidates))
	assert.Equal(t, 100.0, result.Candidates[0].MatchScore)
	assert.Contains(t, out.String(), "RANKED CANDIDATES")
}

func TestRunSession_Errors(t *testing.T) {
	storeErr := errors.New("connection reset")

	tests := []struct {
		name    string
		setup   func(*fakeStore)
		session string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unknown session",
			session: "missing",
			check: func(t *testing.T, err error) {
				var notFound *db.NotFoundError
				assert.True(t, errors.As(err, &notFound))
			},
		},
		{
			name: "no requirements and no description",
			setup: func(s *fakeStore) {
				s.sessions["bare"] = &types.HiringSession{ID: "bare", Description: "  "}
			},
			session: "bare",
			check: func(t *testing.T, err error) {
				var sessionErr *SessionError
				require.True(t, errors.As(err, &sessionErr))
				assert.Equal(t, "bare", sessionErr.SessionID)
			},
		},
		{
			name: "saving extracted requirements fails",
			setup: func(s *fakeStore) {
				s.sessions["desc"] = &types.HiringSession{ID: "desc", Description: "Required: Python."}
				s.saveErr = storeErr
			},
			session: "desc",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, storeErr)
			},
		},
		{
			name: "loading students fails",
			setup: func(s *fakeStore) {
				s.sessions["s"] = &types.HiringSession{ID: "s", Requirements: &types.JobRequirement{}}
				s.studentsErr = storeErr
			},
			session: "s",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, storeErr)
				assert.Contains(t, err.Error(), "loading students failed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.setup != nil {
				tt.setup(store)
			}
			_, err := RunSession(context.Background(), store, tt.session, SessionOptions{Out: &bytes.Buffer{}})
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, store.upserts)
		})
	}
}

func TestSessionAnalytics(t *testing.T) {
	store := newFakeStore()
	store.sessions["sess-1"] = &types.HiringSession{ID: "sess-1", Title: "Analyst Intern", Role: "Data", TargetHires: 2, CurrentHires: 1}
	store.students = sessionStudents()
	store.candidates["sess-1"] = []types.SessionCandidate{
		{ID: "c1", SessionID: "sess-1", StudentID: "s1", MatchScore: 92, Status: types.StatusHired},
		{ID: "c2", SessionID: "sess-1", StudentID: "s2", MatchScore: 81, Status: types.StatusShortlisted},
		{ID: "c3", SessionID: "sess-1", StudentID: "gone", MatchScore: 65, Status: types.StatusApplied},
	}
	core, logs := observer.New(zap.WarnLevel)

	result, err := SessionAnalytics(context.Background(), store, "sess-1", zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, "Analyst Intern", result.SessionInfo.Title)
	assert.Equal(t, 3, result.CandidateStats.TotalCandidates)
	assert.Equal(t, 1, result.CandidateStats.StatusDistribution[types.StatusHired])
	assert.Equal(t, 1, result.CandidateStats.StatusDistribution[types.StatusApplied])
	assert.Equal(t, map[string]int{"CSE": 1, "ECE": 1}, result.CandidateStats.DepartmentDistribution)
	assert.Equal(t, types.MatchScoreDistribution{Excellent: 1, Good: 1, Poor: 1}, result.CandidateStats.MatchScoreDistribution)
	assert.Len(t, result.PipelineMetrics.TopPerformers, 3)

	require.Equal(t, 1, logs.FilterMessage("session candidate has no student record").Len())
	assert.Equal(t, "gone", logs.All()[0].ContextMap()["student_id"])
}

func TestSessionAnalytics_UnknownSession(t *testing.T) {
	_, err := SessionAnalytics(context.Background(), newFakeStore(), "missing", nil)
	var notFound *db.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
