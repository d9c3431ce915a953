package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/jonathan/campus-match/internal/validation"
)

// GetHiringSession loads a session. Stored requirements are decoded leniently:
// unknown keys are ignored, and a type-invalid document is an error.
func (db *DB) GetHiringSession(ctx context.Context, id string) (*types.HiringSession, error) {
	var session types.HiringSession
	var requirements []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id::text, title, role, COALESCE(description, ''), requirements,
		        target_hires, current_hires, status, recruiter_id::text
		 FROM hiring_sessions WHERE id = $1`,
		id,
	).Scan(
		&session.ID, &session.Title, &session.Role, &session.Description, &requirements,
		&session.TargetHires, &session.CurrentHires, &session.Status, &session.RecruiterID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "hiring session", ID: id}
		}
		return nil, fmt.Errorf("failed to get hiring session %s: %w", id, err)
	}

	record, err := decodeRequirements(requirements)
	if err != nil {
		return nil, err
	}
	if record != nil {
		job, err := validation.DecodeJobRequirement(record)
		if err != nil {
			return nil, fmt.Errorf("failed to decode requirements of session %s: %w", id, err)
		}
		if job.ID == "" {
			job.ID = session.ID
		}
		session.Requirements = job
	}

	return &session, nil
}

// SaveHiringSessionRequirements stores an extracted job requirement on the session
func (db *DB) SaveHiringSessionRequirements(ctx context.Context, sessionID string, job *types.JobRequirement) error {
	if job == nil {
		return fmt.Errorf("failed to save requirements of session %s: requirement is nil", sessionID)
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal requirements: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE hiring_sessions SET requirements = $1, updated_at = NOW() WHERE id = $2`,
		data, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to save requirements of session %s: %w", sessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "hiring session", ID: sessionID}
	}
	return nil
}
