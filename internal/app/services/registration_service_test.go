package services

import (
	"testing"
	"time"

	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHappyPath(t *testing.T) {
	svcs, _ := newTestServices(t)
	student := addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	exam := addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)

	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))

	assert.True(t, student.IsRegisteredFor(exam))
	assert.Len(t, exam.RegisteredStudents(), 1)

	// A confirmation notification was raised.
	feed := svcs.Notifications.AllFor(student)
	require.Len(t, feed, 1)
	assert.Equal(t, "REGISTRATION_CONFIRMATION", string(feed[0].Type()))
}

func TestRegisterOnDeadlineDate(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)

	// Late evening of the deadline day still registers.
	onDeadline := time.Date(2025, 7, 1, 23, 30, 0, 0, time.UTC)
	assert.NoError(t, svcs.Registrations.Register("10001", "OOP2025", onDeadline))
}

func TestRegisterAfterDeadline(t *testing.T) {
	svcs, _ := newTestServices(t)
	student := addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)

	err := svcs.Registrations.Register("10001", "OOP2025", afterDeadline)
	assert.ErrorIs(t, err, apperrors.ErrDeadlineExpired)

	var deadlineErr *apperrors.DeadlineExpiredError
	require.ErrorAs(t, err, &deadlineErr)
	assert.Equal(t, "OOP2025", deadlineErr.ExamCode)

	assert.Empty(t, student.RegisteredExams())
	assert.Empty(t, svcs.Notifications.AllFor(student), "no confirmation for a rejected registration")
}

func TestRegisterScheduleConflict(t *testing.T) {
	svcs, _ := newTestServices(t)
	student := addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)
	// Same sitting time, different exam.
	addExam(t, svcs, "MATH1", fixtureSitting, fixtureDeadline)
	// Starts 90 minutes into the first window.
	addExam(t, svcs, "BWL1", fixtureSitting.Add(90*time.Minute), fixtureDeadline)
	// Back to back, no overlap.
	addExam(t, svcs, "PHYS1", fixtureSitting.Add(2*time.Hour), fixtureDeadline)

	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))

	err := svcs.Registrations.Register("10001", "MATH1", beforeDeadline)
	assert.ErrorIs(t, err, apperrors.ErrScheduleConflict)

	var conflictErr *apperrors.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "MATH1", conflictErr.ExamCode)
	assert.Equal(t, "OOP2025", conflictErr.ConflictingCode)

	err = svcs.Registrations.Register("10001", "BWL1", beforeDeadline)
	assert.ErrorIs(t, err, apperrors.ErrScheduleConflict)

	assert.NoError(t, svcs.Registrations.Register("10001", "PHYS1", beforeDeadline))
	assert.Len(t, student.RegisteredExams(), 2)
}

func TestRegisterDeadlineWinsOverConflict(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)
	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))

	// MATH1 would conflict, but its deadline has also passed: the deadline
	// error is reported, not the conflict.
	earlyDeadline := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	addExam(t, svcs, "MATH1", fixtureSitting, earlyDeadline)

	err := svcs.Registrations.Register("10001", "MATH1", beforeDeadline)
	assert.ErrorIs(t, err, apperrors.ErrDeadlineExpired)
	assert.NotErrorIs(t, err, apperrors.ErrScheduleConflict)
}

func TestRegisterTwiceIsIdempotent(t *testing.T) {
	svcs, _ := newTestServices(t)
	student := addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	exam := addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)

	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))
	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))

	assert.Len(t, student.RegisteredExams(), 1)
	assert.Len(t, exam.RegisteredStudents(), 1)
	assert.Len(t, svcs.Notifications.AllFor(student), 1, "no second confirmation")
}

func TestRegisterUnknownStudentOrExam(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)

	assert.ErrorIs(t, svcs.Registrations.Register("99999", "OOP2025", beforeDeadline), apperrors.ErrStudentNotFound)
	assert.ErrorIs(t, svcs.Registrations.Register("10001", "NOPE", beforeDeadline), apperrors.ErrExamNotFound)
}

func TestDeregister(t *testing.T) {
	svcs, _ := newTestServices(t)
	student := addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	exam := addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)
	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))

	require.NoError(t, svcs.Registrations.Deregister("10001", "OOP2025"))
	assert.False(t, student.IsRegisteredFor(exam))
	assert.Empty(t, exam.RegisteredStudents())

	// Deregistering without a registration is a no-op.
	assert.NoError(t, svcs.Registrations.Deregister("10001", "OOP2025"))
}

func TestDeregisterLockedInAfterAttempt(t *testing.T) {
	svcs, _ := newTestServices(t)
	student := addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)
	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))

	_, err := svcs.Attempts.Record("10001", "OOP2025", 5.0, fixtureSitting)
	require.NoError(t, err)

	err = svcs.Registrations.Deregister("10001", "OOP2025")
	assert.ErrorIs(t, err, apperrors.ErrHasAttempts)

	var attemptsErr *apperrors.HasAttemptsError
	require.ErrorAs(t, err, &attemptsErr)
	assert.Equal(t, 1, attemptsErr.Attempts)

	assert.Len(t, student.RegisteredExams(), 1, "registration stays locked in")
}

func TestRegistrationsForStatus(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)
	addExam(t, svcs, "MATH1", fixtureSitting.Add(48*time.Hour), fixtureDeadline)
	addExam(t, svcs, "BWL1", fixtureSitting.Add(96*time.Hour), fixtureDeadline)

	require.NoError(t, svcs.Registrations.Register("10001", "OOP2025", beforeDeadline))
	require.NoError(t, svcs.Registrations.Register("10001", "MATH1", beforeDeadline))
	require.NoError(t, svcs.Registrations.Register("10001", "BWL1", beforeDeadline))

	// OOP2025: failed then passed. MATH1: failed only. BWL1: untouched.
	_, err := svcs.Attempts.Record("10001", "OOP2025", 5.0, fixtureSitting)
	require.NoError(t, err)
	_, err = svcs.Attempts.Record("10001", "OOP2025", 2.0, fixtureSitting)
	require.NoError(t, err)
	_, err = svcs.Attempts.Record("10001", "MATH1", 4.3, fixtureSitting)
	require.NoError(t, err)

	entries, err := svcs.Registrations.RegistrationsFor("10001")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byCode := make(map[string]RegistrationEntry)
	for _, e := range entries {
		byCode[e.Exam.Code()] = e
	}

	assert.Equal(t, StatusPassed, byCode["OOP2025"].Status)
	assert.Equal(t, 2, byCode["OOP2025"].Attempts)
	assert.Equal(t, StatusFailed, byCode["MATH1"].Status)
	assert.Equal(t, StatusRegistered, byCode["BWL1"].Status)
}
