package services

import (
	"context"
	"sync"

	"github.com/examdesk/examdesk/internal/app/repositories"
	"github.com/rs/zerolog"
)

// StudentStore is the persistence collaborator for the roster. It is the only
// durable store the engine consumes; a failing store degrades operations to
// "no durable effect" while the in-memory roster stays authoritative.
type StudentStore interface {
	Upsert(ctx context.Context, rec repositories.StudentRecord) error
	Delete(ctx context.Context, identifier string) (bool, error)
	LoadAll(ctx context.Context) ([]repositories.StudentRecord, error)
}

// Services wires the engine components together. The domain model itself is
// single-threaded and lock-free; Services is the caller-side serialization
// point: every exported operation of every component takes the shared mutex,
// and cross-component calls happen through unexported lock-free internals.
type Services struct {
	mu sync.Mutex

	Directory     *DirectoryService
	Exams         *ExamService
	Registrations *RegistrationService
	Attempts      *AttemptService
	Notifications *NotificationService
	Statistics    *StatisticsService
}

// Config carries the engine tunables.
type Config struct {
	// ReminderHorizonDays is the "deadline is soon" window for bulk reminders.
	ReminderHorizonDays int
}

// NewServices builds all engine components around one shared mutex.
func NewServices(store StudentStore, cfg Config, logger zerolog.Logger) *Services {
	s := &Services{}

	if cfg.ReminderHorizonDays <= 0 {
		cfg.ReminderHorizonDays = 7
	}

	s.Directory = newDirectoryService(&s.mu, store, logger)
	s.Exams = newExamService(&s.mu)
	s.Notifications = newNotificationService(&s.mu, s.Directory, s.Exams, cfg.ReminderHorizonDays)
	s.Registrations = newRegistrationService(&s.mu, s.Directory, s.Exams, s.Notifications)
	s.Attempts = newAttemptService(&s.mu, s.Directory, s.Exams, s.Notifications)
	s.Statistics = newStatisticsService(&s.mu, s.Directory, s.Exams)

	return s
}
