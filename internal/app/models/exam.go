package models

import (
	"fmt"
	"time"

	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/examdesk/examdesk/internal/pkg/dates"
	"github.com/examdesk/examdesk/internal/pkg/validation"
)

// SittingDuration is the fixed length of an exam's time window. The sitting
// is modeled as the half-open interval [start, start+SittingDuration).
const SittingDuration = 2 * time.Hour

// Exam is an exam offering identified by a unique code. It holds the sitting
// date-time, the room, the registration deadline (a calendar date) and the
// maximum-attempts count, plus a back-reference to its registered students.
type Exam struct {
	code        string
	title       string
	module      string
	sitting     time.Time
	room        string
	deadline    time.Time
	maxAttempts int

	registered []*Student
	attempts   []*Attempt
}

// NewExam validates and constructs an Exam. The registration deadline must
// not lie after the sitting date; maxAttempts must be at least 1.
func NewExam(code, title, module string, sitting time.Time, room string, deadline time.Time, maxAttempts int) (*Exam, error) {
	e := &Exam{code: code}
	if validation.IsBlank(code) {
		return nil, fmt.Errorf("%w: exam code cannot be empty", apperrors.ErrValidationFailed)
	}
	if err := e.Update(title, module, sitting, room, deadline, maxAttempts); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the exam's mutable fields, re-checking the invariants.
// The code is identity and never changes.
func (e *Exam) Update(title, module string, sitting time.Time, room string, deadline time.Time, maxAttempts int) error {
	if validation.IsBlank(title) {
		return fmt.Errorf("%w: exam title cannot be empty", apperrors.ErrValidationFailed)
	}
	if maxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", apperrors.ErrValidationFailed)
	}
	if dates.DateOnly(deadline).After(dates.DateOnly(sitting)) {
		return apperrors.ErrInvalidExamDates
	}

	e.title = title
	e.module = module
	e.sitting = sitting
	e.room = room
	e.deadline = deadline
	e.maxAttempts = maxAttempts
	return nil
}

func (e *Exam) Code() string       { return e.code }
func (e *Exam) Title() string      { return e.title }
func (e *Exam) Module() string     { return e.module }
func (e *Exam) Sitting() time.Time { return e.sitting }
func (e *Exam) Room() string       { return e.room }
func (e *Exam) MaxAttempts() int   { return e.maxAttempts }

// Deadline returns the last calendar date on which registration is allowed.
func (e *Exam) Deadline() time.Time { return e.deadline }

// Overlaps reports whether the two exams' time windows intersect. Windows are
// half-open, so identical sitting times always overlap while exact adjacency
// (one window ending where the other starts) does not. Symmetric.
func (e *Exam) Overlaps(other *Exam) bool {
	if other == nil {
		return false
	}
	endA := e.sitting.Add(SittingDuration)
	endB := other.sitting.Add(SittingDuration)
	return e.sitting.Before(endB) && other.sitting.Before(endA)
}

// DeadlineExpired reports whether asOf falls strictly after the registration
// deadline date. Registering on the deadline date itself is still allowed.
func (e *Exam) DeadlineExpired(asOf time.Time) bool {
	return dates.DateOnly(asOf).After(dates.DateOnly(e.deadline))
}

// IsUpcoming reports whether the sitting lies in the future relative to asOf.
func (e *Exam) IsUpcoming(asOf time.Time) bool {
	return e.sitting.After(asOf)
}

// RegisteredStudents returns a snapshot of the registered students.
func (e *Exam) RegisteredStudents() []*Student {
	out := make([]*Student, len(e.registered))
	copy(out, e.registered)
	return out
}

// AddStudent records the back-reference for a registration. Idempotent.
func (e *Exam) AddStudent(s *Student) {
	if s == nil {
		return
	}
	for _, r := range e.registered {
		if r == s {
			return
		}
	}
	e.registered = append(e.registered, s)
}

// RemoveStudent drops the back-reference for a removed registration.
func (e *Exam) RemoveStudent(s *Student) {
	for i, r := range e.registered {
		if r == s {
			e.registered = append(e.registered[:i], e.registered[i+1:]...)
			return
		}
	}
}

// Attempts returns a snapshot of the exam-scoped attempt ledger in
// recording order.
func (e *Exam) Attempts() []*Attempt {
	out := make([]*Attempt, len(e.attempts))
	copy(out, e.attempts)
	return out
}

// HasAttempts reports whether anyone has sat this exam yet.
func (e *Exam) HasAttempts() bool {
	return len(e.attempts) > 0
}

// RecordAttempt appends an attempt to the exam-scoped ledger.
func (e *Exam) RecordAttempt(attempt *Attempt) {
	if attempt != nil {
		e.attempts = append(e.attempts, attempt)
	}
}

func (e *Exam) String() string {
	return fmt.Sprintf("%s - %s (%s)", e.code, e.title, e.sitting.Format("2006-01-02 15:04"))
}
