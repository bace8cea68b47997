package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/examdesk/examdesk/internal/pkg/validation"
)

// Student is a roster member identified by a fixed-format registration
// identifier. The identifier is validated at construction and immutable
// afterwards. A student owns its attempt ledger view and its set of exam
// registrations; both are mutated only through the engine services.
type Student struct {
	identifier string
	firstName  string
	lastName   string
	program    string
	birthDate  *time.Time

	attempts      []*Attempt
	registrations []*Exam
}

// NewStudent validates and constructs a Student. The identifier must be 5-8
// digits; first name, last name and program must be non-empty.
func NewStudent(identifier, firstName, lastName, program string, birthDate *time.Time) (*Student, error) {
	if !validation.IsValidIdentifier(identifier) {
		return nil, fmt.Errorf("%w: %q must be 5-8 digits", apperrors.ErrInvalidIdentifier, identifier)
	}
	if validation.IsBlank(firstName) {
		return nil, fmt.Errorf("%w: first name cannot be empty", apperrors.ErrValidationFailed)
	}
	if validation.IsBlank(lastName) {
		return nil, fmt.Errorf("%w: last name cannot be empty", apperrors.ErrValidationFailed)
	}
	if validation.IsBlank(program) {
		return nil, fmt.Errorf("%w: program cannot be empty", apperrors.ErrValidationFailed)
	}

	return &Student{
		identifier: identifier,
		firstName:  strings.TrimSpace(firstName),
		lastName:   strings.TrimSpace(lastName),
		program:    strings.TrimSpace(program),
		birthDate:  birthDate,
	}, nil
}

func (s *Student) Identifier() string { return s.identifier }
func (s *Student) FirstName() string  { return s.firstName }
func (s *Student) LastName() string   { return s.lastName }
func (s *Student) Program() string    { return s.program }

// BirthDate returns the birth date, or nil when unknown.
func (s *Student) BirthDate() *time.Time { return s.birthDate }

// FullName returns "First Last" for messages and listings.
func (s *Student) FullName() string {
	return s.firstName + " " + s.lastName
}

// Attempts returns a snapshot of the student's graded attempts in recording
// order. Mutating the returned slice does not affect the ledger.
func (s *Student) Attempts() []*Attempt {
	out := make([]*Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// AttemptsFor returns the student's attempts for one exam, in recording order.
func (s *Student) AttemptsFor(exam *Exam) []*Attempt {
	var out []*Attempt
	for _, a := range s.attempts {
		if a.Exam() == exam {
			out = append(out, a)
		}
	}
	return out
}

// HasAttemptFor reports whether the student has sat the given exam at least once.
func (s *Student) HasAttemptFor(exam *Exam) bool {
	for _, a := range s.attempts {
		if a.Exam() == exam {
			return true
		}
	}
	return false
}

// RecordAttempt appends an attempt to the student's ledger view.
func (s *Student) RecordAttempt(attempt *Attempt) {
	if attempt != nil {
		s.attempts = append(s.attempts, attempt)
	}
}

// RegisteredExams returns a snapshot of the exams the student is registered for.
func (s *Student) RegisteredExams() []*Exam {
	out := make([]*Exam, len(s.registrations))
	copy(out, s.registrations)
	return out
}

// IsRegisteredFor reports whether the student holds a registration for the exam.
func (s *Student) IsRegisteredFor(exam *Exam) bool {
	for _, e := range s.registrations {
		if e == exam {
			return true
		}
	}
	return false
}

// RegisterFor adds the exam to the student's registration set. Registering
// for an already-registered exam is a no-op. Deadline and conflict rules are
// the registration engine's concern, not the entity's.
func (s *Student) RegisterFor(exam *Exam) {
	if exam == nil || s.IsRegisteredFor(exam) {
		return
	}
	s.registrations = append(s.registrations, exam)
}

// DeregisterFrom removes the exam from the student's registration set.
func (s *Student) DeregisterFrom(exam *Exam) {
	for i, e := range s.registrations {
		if e == exam {
			s.registrations = append(s.registrations[:i], s.registrations[i+1:]...)
			return
		}
	}
}

// AverageGrade is the arithmetic mean over the student's passed attempts
// across all exams. Failing attempts are excluded; 0 means "no grade yet".
func (s *Student) AverageGrade() float64 {
	var sum float64
	var n int
	for _, a := range s.attempts {
		if a.Passed() {
			sum += a.Score()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (s *Student) String() string {
	return fmt.Sprintf("%s: %s %s (%s)", s.identifier, s.firstName, s.lastName, s.program)
}
