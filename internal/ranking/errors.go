package ranking

import "fmt"

// ScoringError reports a candidate that could not be scored during ranking
type ScoringError struct {
	CandidateRef string
	Message      string
	Cause        error
}

func (e *ScoringError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("candidate %s: %s: %v", e.CandidateRef, e.Message, e.Cause)
	}
	return fmt.Sprintf("candidate %s: %s", e.CandidateRef, e.Message)
}

func (e *ScoringError) Unwrap() error {
	return e.Cause
}
