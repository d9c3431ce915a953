//go:build integration

package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

// seedSession inserts a recruiter profile, a session and one student, removing them on cleanup
func seedSession(t *testing.T, db *DB) (sessionID, studentID string) {
	t.Helper()
	ctx := context.Background()

	recruiterID := uuid.NewString()
	studentID = uuid.NewString()
	sessionID = uuid.NewString()

	_, err := db.pool.Exec(ctx,
		`INSERT INTO profiles (id, email, full_name, role) VALUES ($1, $2, 'Test Recruiter', 'admin')`,
		recruiterID, recruiterID+"@test.example.com")
	require.NoError(t, err)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, email, full_name, role, tenth_percentage) VALUES ($1, $2, 'Test Student', 'student', 88.5)`,
		studentID, studentID+"@test.example.com")
	require.NoError(t, err)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO students (id, skills, year, gpa, department, education, has_internship, ats_score)
		 VALUES ($1, $2, '3rd Year', '8.2', 'CSE', '[{"degree":"B.Tech","department":"Computer Science"}]', true, 70)`,
		studentID, []string{"Python", "SQL"})
	require.NoError(t, err)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO hiring_sessions (id, title, role, description, recruiter_id, target_hires)
		 VALUES ($1, 'Test Drive', 'Backend Intern', 'Looking for Python developers', $2, 2)`,
		sessionID, recruiterID)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = db.pool.Exec(ctx, "DELETE FROM session_candidates WHERE session_id = $1", sessionID)
		_, _ = db.pool.Exec(ctx, "DELETE FROM hiring_sessions WHERE id = $1", sessionID)
		_, _ = db.pool.Exec(ctx, "DELETE FROM students WHERE id = $1", studentID)
		_, _ = db.pool.Exec(ctx, "DELETE FROM profiles WHERE id IN ($1, $2)", studentID, recruiterID)
	})
	return sessionID, studentID
}

func TestIntegration_GetStudent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	_, studentID := seedSession(t, db)

	profile, err := db.GetStudent(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, "Test Student", profile.Name)
	assert.Equal(t, 3, profile.Year)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
	assert.Equal(t, 88.5, *profile.AcademicInfo.TenthPercentage)

	students, err := db.ListStudents(ctx)
	require.NoError(t, err)
	found := false
	for _, s := range students {
		found = found || s.ID == studentID
	}
	assert.True(t, found)

	_, err = db.GetStudent(ctx, uuid.NewString())
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestIntegration_SessionRequirements(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	sessionID, _ := seedSession(t, db)

	session, err := db.GetHiringSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, session.Requirements)
	assert.Equal(t, "Looking for Python developers", session.Description)

	job := &types.JobRequirement{
		RequiredSkills: []string{"Python"},
		Eligibility:    types.Eligibility{CGPAMinimum: 7, EligibleYears: []int{3, 4}},
	}
	require.NoError(t, db.SaveHiringSessionRequirements(ctx, sessionID, job))

	session, err = db.GetHiringSession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, session.Requirements)
	assert.Equal(t, []string{"Python"}, session.Requirements.RequiredSkills)
	assert.Equal(t, []int{3, 4}, session.Requirements.Eligibility.EligibleYears)
	assert.Equal(t, sessionID, session.Requirements.ID)
}

func TestIntegration_SessionCandidates(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	sessionID, studentID := seedSession(t, db)

	created, err := db.UpsertSessionCandidate(ctx, sessionID, studentID, 72.5)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApplied, created.Status)

	require.NoError(t, db.UpdateCandidateStatus(ctx, &types.StatusUpdate{CandidateID: created.ID, Status: types.StatusHired, Notes: "strong"}))

	// a rescore keeps the status
	rescored, err := db.UpsertSessionCandidate(ctx, sessionID, studentID, 80)
	require.NoError(t, err)
	assert.Equal(t, created.ID, rescored.ID)
	assert.Equal(t, types.StatusHired, rescored.Status)
	assert.Equal(t, "strong", rescored.RecruiterNotes)

	candidates, err := db.ListSessionCandidates(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, 80.0, candidates[0].MatchScore)

	// hiring twice counts once
	require.NoError(t, db.UpdateCandidateStatus(ctx, &types.StatusUpdate{CandidateID: created.ID, Status: types.StatusHired}))
	session, err := db.GetHiringSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.CurrentHires)

	err = db.UpdateCandidateStatus(ctx, &types.StatusUpdate{CandidateID: uuid.NewString(), Status: types.StatusRejected})
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestIntegration_UpdateCandidateStatuses(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	sessionID, studentID := seedSession(t, db)

	created, err := db.UpsertSessionCandidate(ctx, sessionID, studentID, 65)
	require.NoError(t, err)

	// a missing candidate rolls back the whole batch
	err = db.UpdateCandidateStatuses(ctx, []*types.StatusUpdate{
		{CandidateID: created.ID, Status: types.StatusHired},
		{CandidateID: uuid.NewString(), Status: types.StatusRejected},
	})
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))

	session, err := db.GetHiringSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentHires)

	require.NoError(t, db.UpdateCandidateStatuses(ctx, []*types.StatusUpdate{
		{CandidateID: created.ID, Status: types.StatusShortlisted, Notes: "phone screen"},
		{CandidateID: created.ID, Status: types.StatusHired},
	}))

	candidates, err := db.ListSessionCandidates(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, types.StatusHired, candidates[0].Status)
	assert.Equal(t, "phone screen", candidates[0].RecruiterNotes)

	session, err = db.GetHiringSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.CurrentHires)
}
