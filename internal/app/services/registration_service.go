package services

import (
	"sync"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/pkg/apperrors"
)

// RegistrationStatus classifies one registration against the attempt ledger.
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "REGISTERED"
	StatusPassed     RegistrationStatus = "PASSED"
	StatusFailed     RegistrationStatus = "FAILED"
)

// RegistrationEntry is one row of a student's registration listing.
type RegistrationEntry struct {
	Exam     *models.Exam
	Status   RegistrationStatus
	Attempts int
}

// RegistrationService applies the registration rules: deadline check first,
// then schedule-conflict check, then the idempotent add with confirmation.
type RegistrationService struct {
	mu            *sync.Mutex
	directory     *DirectoryService
	exams         *ExamService
	notifications *NotificationService
}

func newRegistrationService(mu *sync.Mutex, directory *DirectoryService, exams *ExamService, notifications *NotificationService) *RegistrationService {
	return &RegistrationService{
		mu:            mu,
		directory:     directory,
		exams:         exams,
		notifications: notifications,
	}
}

// Register registers the student for the exam as of the given time. The
// deadline rule is checked before the conflict rule so an expired deadline
// always wins. Registering twice is accepted without a second confirmation.
func (s *RegistrationService) Register(identifier, examCode string, asOf time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.directory.find(identifier)
	if err != nil {
		return err
	}
	exam, err := s.exams.find(examCode)
	if err != nil {
		return err
	}

	if exam.DeadlineExpired(asOf) {
		return &apperrors.DeadlineExpiredError{ExamCode: exam.Code(), Deadline: exam.Deadline()}
	}
	for _, other := range student.RegisteredExams() {
		if other != exam && exam.Overlaps(other) {
			return &apperrors.ScheduleConflictError{
				ExamCode:           exam.Code(),
				ConflictingCode:    other.Code(),
				ConflictingTitle:   other.Title(),
				ConflictingSitting: other.Sitting(),
			}
		}
	}

	if student.IsRegisteredFor(exam) {
		return nil
	}
	student.RegisterFor(exam)
	exam.AddStudent(student)
	s.notifications.notifyRegistration(student, exam)
	return nil
}

// Deregister removes the student's registration. A registration with
// recorded attempts is locked in and cannot be withdrawn.
func (s *RegistrationService) Deregister(identifier, examCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.directory.find(identifier)
	if err != nil {
		return err
	}
	exam, err := s.exams.find(examCode)
	if err != nil {
		return err
	}
	if !student.IsRegisteredFor(exam) {
		return nil
	}
	if n := len(student.AttemptsFor(exam)); n > 0 {
		return &apperrors.HasAttemptsError{Identifier: identifier, ExamCode: examCode, Attempts: n}
	}

	student.DeregisterFrom(exam)
	exam.RemoveStudent(student)
	return nil
}

// RegistrationsFor lists the student's registrations with their status. The
// status reflects the best attempt: PASSED once any attempt passed, FAILED
// when all attempts failed, REGISTERED while no attempt exists.
func (s *RegistrationService) RegistrationsFor(identifier string) ([]RegistrationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.directory.find(identifier)
	if err != nil {
		return nil, err
	}

	var out []RegistrationEntry
	for _, exam := range student.RegisteredExams() {
		attempts := student.AttemptsFor(exam)
		status := StatusRegistered
		if len(attempts) > 0 {
			status = StatusFailed
			for _, a := range attempts {
				if a.Passed() {
					status = StatusPassed
					break
				}
			}
		}
		out = append(out, RegistrationEntry{Exam: exam, Status: status, Attempts: len(attempts)})
	}
	return out, nil
}
