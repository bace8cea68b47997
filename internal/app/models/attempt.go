package models

import (
	"fmt"
	"time"

	"github.com/examdesk/examdesk/internal/pkg/apperrors"
)

// Grading scale: 1.0 is the best grade, 5.0 the worst. An attempt passes
// when its score is at or below PassingThreshold.
const (
	BestScore        = 1.0
	WorstScore       = 5.0
	PassingThreshold = 4.0
)

// Attempt is one graded sitting of an exam by a student. It is an immutable
// fact: created once by the grading operation and never modified.
type Attempt struct {
	student *Student
	exam    *Exam
	score   float64
	date    time.Time
}

// NewAttempt validates the score against the grading scale and constructs
// the attempt.
func NewAttempt(student *Student, exam *Exam, score float64, date time.Time) (*Attempt, error) {
	if student == nil || exam == nil {
		return nil, fmt.Errorf("%w: attempt requires a student and an exam", apperrors.ErrValidationFailed)
	}
	if score < BestScore || score > WorstScore {
		return nil, fmt.Errorf("%w: got %.1f", apperrors.ErrInvalidScore, score)
	}
	return &Attempt{student: student, exam: exam, score: score, date: date}, nil
}

func (a *Attempt) Student() *Student { return a.student }
func (a *Attempt) Exam() *Exam       { return a.exam }
func (a *Attempt) Score() float64    { return a.score }
func (a *Attempt) Date() time.Time   { return a.date }

// Passed reports whether the score is at or below the passing threshold.
func (a *Attempt) Passed() bool {
	return a.score <= PassingThreshold
}

func (a *Attempt) String() string {
	verdict := "failed"
	if a.Passed() {
		verdict = "passed"
	}
	return fmt.Sprintf("%s %s: %.1f (%s)", a.student.Identifier(), a.exam.Code(), a.score, verdict)
}
