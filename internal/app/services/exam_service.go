package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/pkg/apperrors"
)

// ExamService owns the exam catalog keyed by exam code.
type ExamService struct {
	mu      *sync.Mutex
	catalog map[string]*models.Exam
}

func newExamService(mu *sync.Mutex) *ExamService {
	return &ExamService{
		mu:      mu,
		catalog: make(map[string]*models.Exam),
	}
}

// Create adds a new exam to the catalog, rejecting duplicate codes.
func (s *ExamService) Create(code, title, module string, sitting time.Time, room string, deadline time.Time, maxAttempts int) (*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.catalog[code]; exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateExam, code)
	}

	exam, err := models.NewExam(code, title, module, sitting, room, deadline, maxAttempts)
	if err != nil {
		return nil, err
	}
	s.catalog[code] = exam
	return exam, nil
}

// CreateIgnoringErrors is the best-effort seed path: duplicates and invalid
// exams are silently skipped.
func (s *ExamService) CreateIgnoringErrors(code, title, module string, sitting time.Time, room string, deadline time.Time, maxAttempts int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.catalog[code]; exists {
		return
	}
	exam, err := models.NewExam(code, title, module, sitting, room, deadline, maxAttempts)
	if err != nil {
		return
	}
	s.catalog[code] = exam
}

// Update replaces the mutable fields of an existing exam. The code is
// immutable. Validation failures leave the exam unchanged.
func (s *ExamService) Update(code, title, module string, sitting time.Time, room string, deadline time.Time, maxAttempts int) (*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, err := s.find(code)
	if err != nil {
		return nil, err
	}
	if err := exam.Update(title, module, sitting, room, deadline, maxAttempts); err != nil {
		return nil, err
	}
	return exam, nil
}

// Delete removes an exam from the catalog. An exam with recorded attempts
// cannot be deleted; registrations without attempts are released.
func (s *ExamService) Delete(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, err := s.find(code)
	if err != nil {
		return err
	}
	if exam.HasAttempts() {
		return fmt.Errorf("%w: %s", apperrors.ErrExamHasAttempts, code)
	}

	for _, student := range exam.RegisteredStudents() {
		student.DeregisterFrom(exam)
	}
	delete(s.catalog, code)
	return nil
}

// Find looks up an exam by code.
func (s *ExamService) Find(code string) (*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(code)
}

func (s *ExamService) find(code string) (*models.Exam, error) {
	exam, exists := s.catalog[code]
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrExamNotFound, code)
	}
	return exam, nil
}

// SortedAll returns the whole catalog ordered by sitting time, then code.
func (s *ExamService) SortedAll() []*models.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedAll()
}

func (s *ExamService) sortedAll() []*models.Exam {
	out := make([]*models.Exam, 0, len(s.catalog))
	for _, exam := range s.catalog {
		out = append(out, exam)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Sitting().Equal(out[j].Sitting()) {
			return out[i].Sitting().Before(out[j].Sitting())
		}
		return out[i].Code() < out[j].Code()
	})
	return out
}

// Upcoming returns the exams whose sitting lies strictly after asOf, ordered
// by sitting time.
func (s *ExamService) Upcoming(asOf time.Time) []*models.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Exam
	for _, exam := range s.sortedAll() {
		if exam.IsUpcoming(asOf) {
			out = append(out, exam)
		}
	}
	return out
}
