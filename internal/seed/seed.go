// Package seed loads a small demo data set for development environments.
package seed

import (
	"context"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/app/services"
	"github.com/rs/zerolog"
)

type demoStudent struct {
	identifier string
	firstName  string
	lastName   string
	program    string
	birthDate  time.Time
}

type demoExam struct {
	code        string
	title       string
	module      string
	sitting     time.Time
	room        string
	deadline    time.Time
	maxAttempts int
}

var demoStudents = []demoStudent{
	{"10001", "Max", "Mustermann", "Computer Science", time.Date(2000, 5, 15, 0, 0, 0, 0, time.UTC)},
	{"10002", "Anna", "Schmidt", "Business Administration", time.Date(1999, 8, 22, 0, 0, 0, 0, time.UTC)},
	{"10003", "Tom", "Weber", "Computer Science", time.Date(2001, 3, 10, 0, 0, 0, 0, time.UTC)},
	{"10004", "Lisa", "Mueller", "Mathematics", time.Date(2000, 11, 5, 0, 0, 0, 0, time.UTC)},
	{"10005", "Sarah", "Meyer", "Physics", time.Date(2000, 7, 18, 0, 0, 0, 0, time.UTC)},
}

var demoExams = []demoExam{
	{
		code:        "OOP2025",
		title:       "Object-Oriented Programming",
		module:      "Computer Science Foundations",
		sitting:     time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC),
		room:        "H1",
		deadline:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		maxAttempts: 3,
	},
	{
		code:        "MATH1",
		title:       "Mathematics I",
		module:      "Foundations",
		sitting:     time.Date(2025, 7, 20, 14, 0, 0, 0, time.UTC),
		room:        "A101",
		deadline:    time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		maxAttempts: 3,
	},
	{
		code:        "BWL1",
		title:       "Business Administration Basics",
		module:      "Business Studies",
		sitting:     time.Date(2025, 7, 18, 9, 0, 0, 0, time.UTC),
		room:        "B205",
		deadline:    time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		maxAttempts: 3,
	},
}

// CreateDemoData loads the demo roster and exam catalog. Entries that already
// exist are skipped silently, so repeated startups are safe.
func CreateDemoData(ctx context.Context, svcs *services.Services, lgr zerolog.Logger) {
	for _, d := range demoStudents {
		birthDate := d.birthDate
		student, err := models.NewStudent(d.identifier, d.firstName, d.lastName, d.program, &birthDate)
		if err != nil {
			lgr.Warn().Err(err).Str("identifier", d.identifier).Msg("Skipping invalid demo student")
			continue
		}
		svcs.Directory.AddIgnoringErrors(ctx, student)
	}

	for _, d := range demoExams {
		svcs.Exams.CreateIgnoringErrors(d.code, d.title, d.module, d.sitting, d.room, d.deadline, d.maxAttempts)
	}

	lgr.Info().Int("students", len(demoStudents)).Int("exams", len(demoExams)).Msg("Demo data loaded")
}
