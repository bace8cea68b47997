package models

import (
	"testing"
	"time"

	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExamAt(t *testing.T, code string, sitting time.Time) *Exam {
	t.Helper()
	deadline := sitting.AddDate(0, 0, -14)
	exam, err := NewExam(code, "Exam "+code, "Foundations", sitting, "H1", deadline, 3)
	require.NoError(t, err)
	return exam
}

func TestNewExamValidation(t *testing.T) {
	sitting := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

	t.Run("blank title", func(t *testing.T) {
		_, err := NewExam("OOP2025", " ", "", sitting, "H1", sitting.AddDate(0, 0, -14), 3)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("attempt cap below one", func(t *testing.T) {
		_, err := NewExam("OOP2025", "Object-Oriented Programming", "", sitting, "H1", sitting.AddDate(0, 0, -14), 0)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("deadline after sitting date", func(t *testing.T) {
		_, err := NewExam("OOP2025", "Object-Oriented Programming", "", sitting, "H1", sitting.AddDate(0, 0, 1), 3)
		assert.ErrorIs(t, err, apperrors.ErrInvalidExamDates)
	})

	t.Run("deadline on sitting date is allowed", func(t *testing.T) {
		// Same calendar day, even with a later clock time.
		deadline := time.Date(2025, 7, 15, 23, 0, 0, 0, time.UTC)
		_, err := NewExam("OOP2025", "Object-Oriented Programming", "", sitting, "H1", deadline, 3)
		assert.NoError(t, err)
	})
}

func TestExamDeadlineExpired(t *testing.T) {
	sitting := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	exam, err := NewExam("OOP2025", "Object-Oriented Programming", "", sitting, "H1", deadline, 3)
	require.NoError(t, err)

	assert.False(t, exam.DeadlineExpired(time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)))
	// The deadline day itself still counts as open, whatever the clock says.
	assert.False(t, exam.DeadlineExpired(time.Date(2025, 7, 1, 23, 59, 0, 0, time.UTC)))
	assert.True(t, exam.DeadlineExpired(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)))
}

func TestExamOverlaps(t *testing.T) {
	base := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

	a := newExamAt(t, "A1", base)

	tests := []struct {
		name    string
		sitting time.Time
		want    bool
	}{
		{"identical start", base, true},
		{"starts mid-window", base.Add(time.Hour), true},
		{"starts just inside the end", base.Add(2*time.Hour - time.Minute), true},
		{"back to back", base.Add(2 * time.Hour), false},
		{"ends exactly at start", base.Add(-2 * time.Hour), false},
		{"well apart", base.Add(26 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newExamAt(t, "B1", tt.sitting)
			assert.Equal(t, tt.want, a.Overlaps(b))
			assert.Equal(t, tt.want, b.Overlaps(a), "overlap is symmetric")
		})
	}
}

func TestExamRegisteredStudents(t *testing.T) {
	exam := newExamAt(t, "OOP2025", time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC))
	student := mustStudent(t, "10001", "Max", "Mustermann", "Computer Science")

	exam.AddStudent(student)
	exam.AddStudent(student) // no duplicate entries
	assert.Len(t, exam.RegisteredStudents(), 1)

	exam.RemoveStudent(student)
	assert.Empty(t, exam.RegisteredStudents())
}

func TestExamAttemptLedger(t *testing.T) {
	exam := newExamAt(t, "OOP2025", time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC))
	student := mustStudent(t, "10001", "Max", "Mustermann", "Computer Science")

	assert.False(t, exam.HasAttempts())

	attempt, err := NewAttempt(student, exam, 2.0, exam.Sitting())
	require.NoError(t, err)
	exam.RecordAttempt(attempt)

	assert.True(t, exam.HasAttempts())
	assert.Len(t, exam.Attempts(), 1)
}
