package services

import (
	"errors"
	"fmt"
)

// Engine error kinds. Every engine failure is returned as a value carrying a
// kind and the offending payload field; routes map kinds to HTTP statuses.
const (
	ErrKindInvalidTarget         = "INVALID_TARGET"
	ErrKindInactiveTarget        = "INACTIVE_TARGET"
	ErrKindSlotTaken             = "SLOT_TAKEN"
	ErrKindScheduleException     = "SCHEDULE_EXCEPTION"
	ErrKindNoSchedule            = "NO_SCHEDULE"
	ErrKindOutsideOperatingHours = "OUTSIDE_OPERATING_HOURS"
	ErrKindAdvanceWindowPassed   = "ADVANCE_WINDOW_PASSED"
	ErrKindPastStartDate         = "PAST_START_DATE"
	ErrKindInvalidDuration       = "INVALID_DURATION"
	ErrKindInvalidRecurrence     = "INVALID_RECURRENCE"
	ErrKindPersistenceFailure    = "PERSISTENCE_FAILURE"
)

// Sentinels the persistence collaborator translates driver errors into.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateReference = errors.New("duplicate booking reference")
)

// ErrDeadlineConfig marks a policy whose configured windows survive the
// deadline correction pipeline in a contradictory order. Treated as a fatal
// configuration error, never accepted silently.
var ErrDeadlineConfig = errors.New("deadline configuration produces unsatisfiable ordering")

type BookingError struct {
	Kind   string `json:"kind"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail"`
}

func (e *BookingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func newBookingError(kind, field, format string, args ...interface{}) *BookingError {
	return &BookingError{Kind: kind, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// ErrorKind extracts the engine kind from err, or "" when err is not a
// BookingError.
func ErrorKind(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func IsErrorKind(err error, kind string) bool {
	return ErrorKind(err) == kind
}

// persistenceError wraps an unexpected store failure. Always 500-class.
func persistenceError(err error) *BookingError {
	return newBookingError(ErrKindPersistenceFailure, "", "persistence failure: %v", err)
}
