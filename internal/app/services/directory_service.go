package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/app/repositories"
	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AtRiskThreshold is the grade average above which a student counts as at
// risk (worse than 3.0 on the 1.0-best scale).
const AtRiskThreshold = 3.0

// IdentifierStatistics aggregates the currently registered identifiers.
type IdentifierStatistics struct {
	Count         int
	Lowest        string
	Highest       string
	AverageLength float64
}

// DirectoryService owns the student roster and answers the sorted, filtered
// and statistical queries over it. It is the entry point for the student
// lifecycle; registration and grading requests are delegated to the
// respective engine components.
type DirectoryService struct {
	mu     *sync.Mutex
	store  StudentStore
	logger zerolog.Logger

	roster map[string]*models.Student
}

func newDirectoryService(mu *sync.Mutex, store StudentStore, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		mu:     mu,
		store:  store,
		logger: logger,
		roster: make(map[string]*models.Student),
	}
}

// Hydrate rebuilds the roster from the persistence collaborator. Rows that
// fail validation are skipped with a warning rather than failing the load.
func (s *DirectoryService) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading students: %w", err)
	}

	for _, rec := range records {
		student, err := models.NewStudent(rec.Identifier, rec.FirstName, rec.LastName, rec.Program, rec.BirthDate)
		if err != nil {
			s.logger.Warn().Err(err).Str("identifier", rec.Identifier).Msg("Skipping invalid student record")
			continue
		}
		if _, exists := s.roster[student.Identifier()]; exists {
			continue
		}
		s.roster[student.Identifier()] = student
	}

	s.logger.Info().Int("students", len(s.roster)).Msg("Roster hydrated from database")
	return nil
}

// Add registers a new student, rejecting duplicates. The durable write is
// best-effort: a failing store is logged and the in-memory roster still wins.
func (s *DirectoryService) Add(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, student)
}

func (s *DirectoryService) add(ctx context.Context, student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	if _, exists := s.roster[student.Identifier()]; exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateIdentifier, student.Identifier())
	}

	s.roster[student.Identifier()] = student
	s.persist(ctx, student)
	return nil
}

// AddIgnoringErrors is the best-effort bulk/seed path: duplicates and nil
// students are silently skipped instead of surfacing an error.
func (s *DirectoryService) AddIgnoringErrors(ctx context.Context, student *models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if student == nil {
		return
	}
	if _, exists := s.roster[student.Identifier()]; exists {
		return
	}
	s.roster[student.Identifier()] = student
	s.persist(ctx, student)
}

func (s *DirectoryService) persist(ctx context.Context, student *models.Student) {
	rec := repositories.StudentRecord{
		Identifier: student.Identifier(),
		FirstName:  student.FirstName(),
		LastName:   student.LastName(),
		Program:    student.Program(),
		BirthDate:  student.BirthDate(),
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("identifier", student.Identifier()).Msg("Student not persisted, keeping in-memory state")
	}
}

// Remove deletes the student from the roster. Returns whether anything was
// removed. The durable delete is best-effort.
func (s *DirectoryService) Remove(ctx context.Context, identifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.roster[identifier]; !exists {
		return false
	}
	delete(s.roster, identifier)

	if _, err := s.store.Delete(ctx, identifier); err != nil {
		s.logger.Warn().Err(err).Str("identifier", identifier).Msg("Student not deleted from store, keeping in-memory state")
	}
	return true
}

// FindByIdentifier looks up a student by identifier.
func (s *DirectoryService) FindByIdentifier(identifier string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(identifier)
}

func (s *DirectoryService) find(identifier string) (*models.Student, error) {
	student, exists := s.roster[identifier]
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, identifier)
	}
	return student, nil
}

// SearchByName returns students whose first or last name contains the text,
// case-insensitively, in natural order.
func (s *DirectoryService) SearchByName(text string) []*models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(text)
	var out []*models.Student
	for _, student := range s.roster {
		if strings.Contains(strings.ToLower(student.LastName()), needle) ||
			strings.Contains(strings.ToLower(student.FirstName()), needle) {
			out = append(out, student)
		}
	}
	sortNatural(out)
	return out
}

// SearchByProgram returns students whose program contains the text,
// case-insensitively, in natural order.
func (s *DirectoryService) SearchByProgram(text string) []*models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchByProgram(text)
}

func (s *DirectoryService) searchByProgram(text string) []*models.Student {
	needle := strings.ToLower(text)
	var out []*models.Student
	for _, student := range s.roster {
		if strings.Contains(strings.ToLower(student.Program()), needle) {
			out = append(out, student)
		}
	}
	sortNatural(out)
	return out
}

// SortedAll returns the whole roster ordered by the given criterion, with
// the identifier as the final tie-break for full determinism.
func (s *DirectoryService) SortedAll(criterion models.SortCriterion) []*models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.all()
	switch criterion {
	case models.SortBySurname:
		sortNatural(out)
	case models.SortByFirstName:
		sort.Slice(out, func(i, j int) bool {
			if out[i].FirstName() != out[j].FirstName() {
				return out[i].FirstName() < out[j].FirstName()
			}
			if out[i].LastName() != out[j].LastName() {
				return out[i].LastName() < out[j].LastName()
			}
			return out[i].Identifier() < out[j].Identifier()
		})
	case models.SortByProgram:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Program() != out[j].Program() {
				return out[i].Program() < out[j].Program()
			}
			if out[i].LastName() != out[j].LastName() {
				return out[i].LastName() < out[j].LastName()
			}
			return out[i].Identifier() < out[j].Identifier()
		})
	default:
		sort.Slice(out, func(i, j int) bool {
			return out[i].Identifier() < out[j].Identifier()
		})
	}
	return out
}

// all returns the roster as an unordered slice. Callers sort as needed.
func (s *DirectoryService) all() []*models.Student {
	out := make([]*models.Student, 0, len(s.roster))
	for _, student := range s.roster {
		out = append(out, student)
	}
	return out
}

// byIdentifier returns the roster ordered by identifier. Lock must be held.
func (s *DirectoryService) byIdentifier() []*models.Student {
	out := s.all()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier() < out[j].Identifier()
	})
	return out
}

// StudentsAtRisk returns students whose grade average is worse than the
// at-risk threshold and who have at least one passed attempt, worst first.
func (s *DirectoryService) StudentsAtRisk() []*models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.studentsAtRisk()
}

func (s *DirectoryService) studentsAtRisk() []*models.Student {
	var out []*models.Student
	for _, student := range s.roster {
		avg := student.AverageGrade()
		if avg > AtRiskThreshold {
			out = append(out, student)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].AverageGrade(), out[j].AverageGrade()
		if ai != aj {
			return ai > aj // worst first
		}
		return out[i].Identifier() < out[j].Identifier()
	})
	return out
}

// IdentifierStatistics aggregates the registered identifiers: count,
// lexicographic extremes and average length. Zero-value on an empty roster.
func (s *DirectoryService) IdentifierStatistics() IdentifierStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.roster) == 0 {
		return IdentifierStatistics{}
	}

	identifiers := make([]string, 0, len(s.roster))
	var totalLength int
	for identifier := range s.roster {
		identifiers = append(identifiers, identifier)
		totalLength += len(identifier)
	}
	sort.Strings(identifiers)

	return IdentifierStatistics{
		Count:         len(identifiers),
		Lowest:        identifiers[0],
		Highest:       identifiers[len(identifiers)-1],
		AverageLength: float64(totalLength) / float64(len(identifiers)),
	}
}

// sortNatural orders students by surname, then first name, then identifier.
func sortNatural(students []*models.Student) {
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName() != students[j].LastName() {
			return students[i].LastName() < students[j].LastName()
		}
		if students[i].FirstName() != students[j].FirstName() {
			return students[i].FirstName() < students[j].FirstName()
		}
		return students[i].Identifier() < students[j].Identifier()
	})
}
