package db

import (
	"context"
	"strings"
	"testing"

	"github.com/jonathan/campus-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These cases fail validation before any query runs, so no pool is needed.

func TestUpdateCandidateStatus_Invalid(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	tests := []struct {
		name   string
		update *types.StatusUpdate
	}{
		{"nil update", nil},
		{"unknown status", &types.StatusUpdate{CandidateID: "6f1c2a52-0d7e-4a43-9c55-3f4f1b0c8e11", Status: "interviewing"}},
		{"candidate id not a uuid", &types.StatusUpdate{CandidateID: "c-1", Status: types.StatusHired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.UpdateCandidateStatus(ctx, tt.update)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid status update")
		})
	}
}

func TestUpdateCandidateStatuses_Invalid(t *testing.T) {
	db := &DB{}
	ctx := context.Background()
	valid := &types.StatusUpdate{CandidateID: "6f1c2a52-0d7e-4a43-9c55-3f4f1b0c8e11", Status: types.StatusShortlisted}

	tests := []struct {
		name    string
		updates []*types.StatusUpdate
	}{
		{"no updates", nil},
		{"one nil among valid", []*types.StatusUpdate{valid, nil}},
		{"one invalid among valid", []*types.StatusUpdate{valid, {CandidateID: "c-2", Status: types.StatusRejected}}},
		{"notes too long", []*types.StatusUpdate{{CandidateID: valid.CandidateID, Status: types.StatusHired, Notes: strings.Repeat("n", 2001)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.UpdateCandidateStatuses(ctx, tt.updates)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid status update")
		})
	}
}

func TestUpsertSessionCandidate_Invalid(t *testing.T) {
	db := &DB{}

	_, err := db.UpsertSessionCandidate(context.Background(), "session", "student", 120)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session candidate")

	_, err = db.UpsertSessionCandidate(context.Background(), "", "student", 50)
	require.Error(t, err)
}

func TestSaveHiringSessionRequirements_Nil(t *testing.T) {
	err := (&DB{}).SaveHiringSessionRequirements(context.Background(), "s-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirement is nil")
}
