package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/campus-match/internal/types"
)

// UpsertSessionCandidate records a student's match score for a session.
// New rows start as applied; an existing row keeps its status and gets the new score.
func (db *DB) UpsertSessionCandidate(ctx context.Context, sessionID, studentID string, score float64) (*types.SessionCandidate, error) {
	c := types.SessionCandidate{SessionID: sessionID, StudentID: studentID, MatchScore: score, Status: types.StatusApplied}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session candidate: %w", err)
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO session_candidates (session_id, student_id, match_score, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, student_id) DO UPDATE SET match_score = $3, updated_at = NOW()
		 RETURNING id::text, status, COALESCE(recruiter_notes, '')`,
		sessionID, studentID, score, types.StatusApplied,
	).Scan(&c.ID, &c.Status, &c.RecruiterNotes)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate %s for session %s: %w", studentID, sessionID, err)
	}
	return &c, nil
}

// ListSessionCandidates returns a session's candidates, best match first
func (db *DB) ListSessionCandidates(ctx context.Context, sessionID string) ([]types.SessionCandidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id::text, session_id::text, student_id::text, COALESCE(match_score, 0)::float8,
		        status, COALESCE(recruiter_notes, '')
		 FROM session_candidates
		 WHERE session_id = $1
		 ORDER BY match_score DESC NULLS LAST, created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates of session %s: %w", sessionID, err)
	}
	defer rows.Close()

	candidates := []types.SessionCandidate{}
	for rows.Next() {
		var c types.SessionCandidate
		if err := rows.Scan(&c.ID, &c.SessionID, &c.StudentID, &c.MatchScore, &c.Status, &c.RecruiterNotes); err != nil {
			return nil, fmt.Errorf("failed to scan session candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session candidates: %w", err)
	}
	return candidates, nil
}

// UpdateCandidateStatus moves a candidate through the pipeline. Moving a candidate
// to hired increments the session's current hires in the same transaction.
func (db *DB) UpdateCandidateStatus(ctx context.Context, update *types.StatusUpdate) error {
	return db.UpdateCandidateStatuses(ctx, []*types.StatusUpdate{update})
}

// UpdateCandidateStatuses applies every update in one transaction.
// All updates are validated first; any failure leaves every candidate unchanged.
func (db *DB) UpdateCandidateStatuses(ctx context.Context, updates []*types.StatusUpdate) error {
	if len(updates) == 0 {
		return fmt.Errorf("invalid status update: no updates given")
	}
	for _, update := range updates {
		if update == nil {
			return fmt.Errorf("invalid status update: update is nil")
		}
		if err := update.Validate(); err != nil {
			return fmt.Errorf("invalid status update: %w", err)
		}
	}

	return db.withTx(ctx, func(tx pgx.Tx) error {
		for _, update := range updates {
			if err := applyStatusUpdate(ctx, tx, update); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyStatusUpdate(ctx context.Context, tx pgx.Tx, update *types.StatusUpdate) error {
	var sessionID, previous string
	err := tx.QueryRow(ctx,
		`SELECT session_id::text, status FROM session_candidates WHERE id = $1 FOR UPDATE`,
		update.CandidateID,
	).Scan(&sessionID, &previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Entity: "session candidate", ID: update.CandidateID}
		}
		return fmt.Errorf("failed to load candidate %s: %w", update.CandidateID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE session_candidates
		 SET status = $1, recruiter_notes = COALESCE(NULLIF($2, ''), recruiter_notes), updated_at = NOW()
		 WHERE id = $3`,
		update.Status, update.Notes, update.CandidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate %s: %w", update.CandidateID, err)
	}

	if update.Status == types.StatusHired && previous != types.StatusHired {
		_, err = tx.Exec(ctx,
			`UPDATE hiring_sessions SET current_hires = current_hires + 1, updated_at = NOW() WHERE id = $1`,
			sessionID,
		)
		if err != nil {
			return fmt.Errorf("failed to increment hires of session %s: %w", sessionID, err)
		}
	}
	return nil
}
