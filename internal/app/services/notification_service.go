package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/examdesk/examdesk/internal/pkg/dates"
)

// NotificationService holds the in-memory notification feed and produces the
// engine's outbound messages: registration confirmations, grade notices,
// deadline reminders and at-risk warnings.
type NotificationService struct {
	mu        *sync.Mutex
	directory *DirectoryService
	exams     *ExamService
	horizon   int

	feed []*models.Notification
}

func newNotificationService(mu *sync.Mutex, directory *DirectoryService, exams *ExamService, horizonDays int) *NotificationService {
	return &NotificationService{
		mu:        mu,
		directory: directory,
		exams:     exams,
		horizon:   horizonDays,
	}
}

// notifyRegistration records a registration confirmation. Lock must be held.
func (s *NotificationService) notifyRegistration(student *models.Student, exam *models.Exam) *models.Notification {
	msg := fmt.Sprintf("Registration for %s (%s) confirmed. Sitting: %s, room %s.",
		exam.Title(), exam.Code(), exam.Sitting().Format("2006-01-02 15:04"), exam.Room())
	return s.append(models.NewNotification(models.NotificationRegistration, student, msg))
}

// notifyGrade records a grade-available notice. Lock must be held.
func (s *NotificationService) notifyGrade(student *models.Student, attempt *models.Attempt) *models.Notification {
	outcome := "failed"
	if attempt.Passed() {
		outcome = "passed"
	}
	msg := fmt.Sprintf("Grade for %s (%s) is available: %.1f (%s).",
		attempt.Exam().Title(), attempt.Exam().Code(), attempt.Score(), outcome)
	return s.append(models.NewNotification(models.NotificationGradeAvailable, student, msg))
}

func (s *NotificationService) append(n *models.Notification) *models.Notification {
	s.feed = append(s.feed, n)
	return n
}

// BulkDeadlineReminders creates one reminder per student and exam where the
// student has not registered yet and the registration deadline falls within
// the horizon as of asOf. Pairs are deduplicated within the run; repeated
// runs create repeated reminders.
func (s *NotificationService) BulkDeadlineReminders(asOf time.Time) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	type pair struct {
		identifier string
		code       string
	}
	seen := make(map[pair]bool)
	var created []*models.Notification

	for _, exam := range s.exams.sortedAll() {
		days := dates.DaysUntil(asOf, exam.Deadline())
		if days < 0 || days > s.horizon {
			continue
		}
		for _, student := range s.directory.byIdentifier() {
			if student.IsRegisteredFor(exam) {
				continue
			}
			key := pair{student.Identifier(), exam.Code()}
			if seen[key] {
				continue
			}
			seen[key] = true

			msg := fmt.Sprintf("Registration deadline for %s (%s) is in %d day(s): register by %s.",
				exam.Title(), exam.Code(), days, exam.Deadline().Format("2006-01-02"))
			created = append(created, s.append(models.NewNotification(models.NotificationDeadlineReminder, student, msg)))
		}
	}
	return created
}

// WarnAtRisk sweeps the roster and creates one warning per student whose
// grade average is worse than the at-risk threshold.
func (s *NotificationService) WarnAtRisk() []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created []*models.Notification
	for _, student := range s.directory.studentsAtRisk() {
		msg := fmt.Sprintf("Your grade average is %.2f. Please contact your academic advisor.", student.AverageGrade())
		created = append(created, s.append(models.NewNotification(models.NotificationWarning, student, msg)))
	}
	return created
}

// AllFor returns the student's notifications in creation order.
func (s *NotificationService) AllFor(student *models.Student) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Notification
	for _, n := range s.feed {
		if n.Recipient() == student {
			out = append(out, n)
		}
	}
	return out
}

// UnreadFor returns the student's unread notifications in creation order.
func (s *NotificationService) UnreadFor(student *models.Student) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Notification
	for _, n := range s.feed {
		if n.Recipient() == student && !n.Read() {
			out = append(out, n)
		}
	}
	return out
}

// MarkRead marks a single notification as read. Marking twice is a no-op.
func (s *NotificationService) MarkRead(id string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.feed {
		if n.ID() == id {
			n.MarkRead()
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrNotificationNotFound, id)
}

// MarkAllRead marks all of one student's notifications as read and returns
// how many changed state.
func (s *NotificationService) MarkAllRead(student *models.Student) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int
	for _, n := range s.feed {
		if n.Recipient() == student && !n.Read() {
			n.MarkRead()
			changed++
		}
	}
	return changed
}

// MarkAllReadEveryone marks every notification in the feed as read and
// returns how many changed state.
func (s *NotificationService) MarkAllReadEveryone() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int
	for _, n := range s.feed {
		if !n.Read() {
			n.MarkRead()
			changed++
		}
	}
	return changed
}

// Delete removes a notification from the feed.
func (s *NotificationService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.feed {
		if n.ID() == id {
			s.feed = append(s.feed[:i], s.feed[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", apperrors.ErrNotificationNotFound, id)
}
