package services

import (
	"sync"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
)

// ExamStatistics aggregates the attempt ledger of one exam.
type ExamStatistics struct {
	TotalAttempts int
	Passed        int
	Failed        int
	PassRate      float64
	AverageScore  float64
}

// AttemptService records graded attempts into both ledgers and raises grade
// notices. Attempts are append-only; a registration is not required and the
// attempt cap is informational only.
type AttemptService struct {
	mu            *sync.Mutex
	directory     *DirectoryService
	exams         *ExamService
	notifications *NotificationService
}

func newAttemptService(mu *sync.Mutex, directory *DirectoryService, exams *ExamService, notifications *NotificationService) *AttemptService {
	return &AttemptService{
		mu:            mu,
		directory:     directory,
		exams:         exams,
		notifications: notifications,
	}
}

// Record grades one attempt. The attempt lands on the student's ledger and
// the exam's ledger atomically under the engine lock, and a grade notice is
// raised for the student.
func (s *AttemptService) Record(identifier, examCode string, score float64, date time.Time) (*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.directory.find(identifier)
	if err != nil {
		return nil, err
	}
	exam, err := s.exams.find(examCode)
	if err != nil {
		return nil, err
	}

	attempt, err := models.NewAttempt(student, exam, score, date)
	if err != nil {
		return nil, err
	}
	student.RecordAttempt(attempt)
	exam.RecordAttempt(attempt)
	s.notifications.notifyGrade(student, attempt)
	return attempt, nil
}

// ForStudent returns the student's attempts across all exams in recording order.
func (s *AttemptService) ForStudent(identifier string) ([]*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.directory.find(identifier)
	if err != nil {
		return nil, err
	}
	return student.Attempts(), nil
}

// ForExam returns the exam's attempts in recording order.
func (s *AttemptService) ForExam(examCode string) ([]*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, err := s.exams.find(examCode)
	if err != nil {
		return nil, err
	}
	return exam.Attempts(), nil
}

// AverageGrade returns the student's mean over passed attempts, 0 when no
// attempt has passed yet.
func (s *AttemptService) AverageGrade(identifier string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.directory.find(identifier)
	if err != nil {
		return 0, err
	}
	return student.AverageGrade(), nil
}

// Statistics aggregates one exam's ledger: attempt counts, pass rate and
// mean score over the passed attempts. Zero values on an empty ledger and an
// average of 0 when nothing passed.
func (s *AttemptService) Statistics(examCode string) (ExamStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, err := s.exams.find(examCode)
	if err != nil {
		return ExamStatistics{}, err
	}

	attempts := exam.Attempts()
	stats := ExamStatistics{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return stats, nil
	}

	var passedSum float64
	for _, a := range attempts {
		if a.Passed() {
			stats.Passed++
			passedSum += a.Score()
		} else {
			stats.Failed++
		}
	}
	stats.PassRate = float64(stats.Passed) / float64(stats.TotalAttempts) * 100
	if stats.Passed > 0 {
		stats.AverageScore = passedSum / float64(stats.Passed)
	}
	return stats, nil
}
