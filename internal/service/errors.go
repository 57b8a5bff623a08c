package service

import (
	"errors"
	"fmt"
)

// The three error classes callers need to tell apart: bad input (fix the
// request), illegal transition (refresh a stale view), and not found
// (the target week/record does not exist for that employee).

var (
	ErrNotFound     = errors.New("not found")
	ErrRecordLocked = errors.New("record is not editable")
	ErrForbidden    = errors.New("operation not permitted for this employee")
)

// ValidationError reports bad input, naming the field at fault. It is always
// raised before any state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// TransitionError reports an action attempted against a week whose derived
// status does not allow it.
type TransitionError struct {
	Action     string
	WeekStatus string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a week in status %q", e.Action, e.WeekStatus)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransition reports whether err is an illegal-transition error.
func IsTransition(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
