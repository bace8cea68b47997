package models

import (
	"testing"
	"time"

	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudentValidation(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		firstName  string
		lastName   string
		program    string
		wantErr    error
	}{
		{"valid five digits", "10001", "Max", "Mustermann", "Computer Science", nil},
		{"valid eight digits", "12345678", "Anna", "Schmidt", "Business Administration", nil},
		{"too short", "1234", "Max", "Mustermann", "Computer Science", apperrors.ErrInvalidIdentifier},
		{"too long", "123456789", "Max", "Mustermann", "Computer Science", apperrors.ErrInvalidIdentifier},
		{"non-numeric", "12a45", "Max", "Mustermann", "Computer Science", apperrors.ErrInvalidIdentifier},
		{"empty identifier", "", "Max", "Mustermann", "Computer Science", apperrors.ErrInvalidIdentifier},
		{"blank first name", "10001", "  ", "Mustermann", "Computer Science", apperrors.ErrValidationFailed},
		{"blank last name", "10001", "Max", "", "Computer Science", apperrors.ErrValidationFailed},
		{"blank program", "10001", "Max", "Mustermann", " ", apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student, err := NewStudent(tt.identifier, tt.firstName, tt.lastName, tt.program, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, student)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.identifier, student.Identifier())
		})
	}
}

func TestStudentAverageGrade(t *testing.T) {
	student := mustStudent(t, "10001", "Max", "Mustermann", "Computer Science")
	exam := mustExam(t, "OOP2025", "Object-Oriented Programming")

	assert.Zero(t, student.AverageGrade(), "no attempts means no grade")

	// A failing attempt alone still means no grade.
	fail, err := NewAttempt(student, exam, 5.0, exam.Sitting())
	require.NoError(t, err)
	student.RecordAttempt(fail)
	assert.Zero(t, student.AverageGrade())

	pass1, err := NewAttempt(student, exam, 2.0, exam.Sitting())
	require.NoError(t, err)
	student.RecordAttempt(pass1)

	pass2, err := NewAttempt(student, exam, 3.0, exam.Sitting())
	require.NoError(t, err)
	student.RecordAttempt(pass2)

	assert.InDelta(t, 2.5, student.AverageGrade(), 0.0001, "failing attempts are excluded from the mean")
}

func TestStudentRegistrationSet(t *testing.T) {
	student := mustStudent(t, "10001", "Max", "Mustermann", "Computer Science")
	exam := mustExam(t, "OOP2025", "Object-Oriented Programming")

	assert.False(t, student.IsRegisteredFor(exam))

	student.RegisterFor(exam)
	assert.True(t, student.IsRegisteredFor(exam))
	assert.Len(t, student.RegisteredExams(), 1)

	// Registering again is a no-op, not a duplicate entry.
	student.RegisterFor(exam)
	assert.Len(t, student.RegisteredExams(), 1)

	student.DeregisterFrom(exam)
	assert.False(t, student.IsRegisteredFor(exam))
	assert.Empty(t, student.RegisteredExams())
}

func TestStudentAttemptsForExam(t *testing.T) {
	student := mustStudent(t, "10001", "Max", "Mustermann", "Computer Science")
	oop := mustExam(t, "OOP2025", "Object-Oriented Programming")
	math := mustExam(t, "MATH1", "Mathematics I")

	a1, err := NewAttempt(student, oop, 5.0, oop.Sitting())
	require.NoError(t, err)
	a2, err := NewAttempt(student, oop, 2.0, oop.Sitting())
	require.NoError(t, err)
	a3, err := NewAttempt(student, math, 1.7, math.Sitting())
	require.NoError(t, err)

	student.RecordAttempt(a1)
	student.RecordAttempt(a2)
	student.RecordAttempt(a3)

	assert.Equal(t, []*Attempt{a1, a2}, student.AttemptsFor(oop), "recording order is preserved")
	assert.True(t, student.HasAttemptFor(math))
	assert.Len(t, student.Attempts(), 3)
}

func mustStudent(t *testing.T, identifier, firstName, lastName, program string) *Student {
	t.Helper()
	student, err := NewStudent(identifier, firstName, lastName, program, nil)
	require.NoError(t, err)
	return student
}

func mustExam(t *testing.T, code, title string) *Exam {
	t.Helper()
	sitting := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	exam, err := NewExam(code, title, "Foundations", sitting, "H1", deadline, 3)
	require.NoError(t, err)
	return exam
}
