package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrDuplicateIdentifier = errors.New("student identifier already registered")
	ErrInvalidIdentifier   = errors.New("invalid student identifier format")
)

// Exam errors
var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrDuplicateExam    = errors.New("exam with this code already exists")
	ErrExamHasAttempts  = errors.New("exam has recorded attempts and cannot be deleted")
	ErrInvalidExamDates = errors.New("registration deadline must not be after the exam date")
)

// Registration errors
var (
	ErrDeadlineExpired  = errors.New("registration deadline has expired")
	ErrScheduleConflict = errors.New("exam time conflicts with an existing registration")
	ErrHasAttempts      = errors.New("registration has recorded attempts and cannot be removed")
)

// Grading errors
var (
	ErrInvalidScore = errors.New("score must be on the 1.0-5.0 grading scale")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// DeadlineExpiredError reports a registration rejected because the exam's
// registration deadline has already passed.
type DeadlineExpiredError struct {
	ExamCode string
	Deadline time.Time
}

func (e *DeadlineExpiredError) Error() string {
	return fmt.Sprintf("registration deadline for exam %s expired on %s", e.ExamCode, e.Deadline.Format("2006-01-02"))
}

// Is reports a match against ErrDeadlineExpired so callers can use errors.Is.
func (e *DeadlineExpiredError) Is(target error) bool {
	return target == ErrDeadlineExpired
}

// ScheduleConflictError reports a registration rejected because the exam's
// time window overlaps an exam the student is already registered for.
type ScheduleConflictError struct {
	ExamCode           string
	ConflictingCode    string
	ConflictingTitle   string
	ConflictingSitting time.Time
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("exam %s conflicts with registered exam %s (%s) at %s",
		e.ExamCode, e.ConflictingCode, e.ConflictingTitle, e.ConflictingSitting.Format("2006-01-02 15:04"))
}

// Is reports a match against ErrScheduleConflict so callers can use errors.Is.
func (e *ScheduleConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}

// HasAttemptsError reports a deregistration rejected because the student has
// already sat the exam at least once.
type HasAttemptsError struct {
	Identifier string
	ExamCode   string
	Attempts   int
}

func (e *HasAttemptsError) Error() string {
	return fmt.Sprintf("student %s has %d recorded attempt(s) for exam %s and cannot deregister",
		e.Identifier, e.Attempts, e.ExamCode)
}

// Is reports a match against ErrHasAttempts so callers can use errors.Is.
func (e *HasAttemptsError) Is(target error) bool {
	return target == ErrHasAttempts
}
