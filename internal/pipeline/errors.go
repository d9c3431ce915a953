package pipeline

import "fmt"

// OptionsError reports a missing or conflicting run option
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid options: %s: %s", e.Field, e.Message)
}

// SessionError reports a hiring session that cannot be ranked
type SessionError struct {
	SessionID string
	Message   string
	Cause     error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session %s: %s: %v", e.SessionID, e.Message, e.Cause)
	}
	return fmt.Sprintf("session %s: %s", e.SessionID, e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}
