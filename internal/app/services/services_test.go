package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/app/repositories"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory StudentStore for tests.
type memStore struct {
	records map[string]repositories.StudentRecord
	failing bool
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]repositories.StudentRecord)}
}

func (s *memStore) Upsert(_ context.Context, rec repositories.StudentRecord) error {
	if s.failing {
		return errors.New("store unavailable")
	}
	s.records[rec.Identifier] = rec
	return nil
}

func (s *memStore) Delete(_ context.Context, identifier string) (bool, error) {
	if s.failing {
		return false, errors.New("store unavailable")
	}
	_, ok := s.records[identifier]
	delete(s.records, identifier)
	return ok, nil
}

func (s *memStore) LoadAll(_ context.Context) ([]repositories.StudentRecord, error) {
	if s.failing {
		return nil, errors.New("store unavailable")
	}
	out := make([]repositories.StudentRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func newTestServices(t *testing.T) (*Services, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewServices(store, Config{ReminderHorizonDays: 7}, zerolog.Nop()), store
}

func addStudent(t *testing.T, svcs *Services, identifier, firstName, lastName, program string) *models.Student {
	t.Helper()
	student, err := models.NewStudent(identifier, firstName, lastName, program, nil)
	require.NoError(t, err)
	require.NoError(t, svcs.Directory.Add(context.Background(), student))
	return student
}

func addExam(t *testing.T, svcs *Services, code string, sitting, deadline time.Time) *models.Exam {
	t.Helper()
	exam, err := svcs.Exams.Create(code, "Exam "+code, "Foundations", sitting, "H1", deadline, 3)
	require.NoError(t, err)
	return exam
}

// Fixture times shared across service tests. The sitting is two weeks after
// the registration deadline.
var (
	fixtureSitting  = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	fixtureDeadline = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	beforeDeadline  = time.Date(2025, 6, 28, 9, 0, 0, 0, time.UTC)
	afterDeadline   = time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
)
