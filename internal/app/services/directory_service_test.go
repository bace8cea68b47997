package services

import (
	"context"
	"testing"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/app/repositories"
	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryAddAndFind(t *testing.T) {
	svcs, store := newTestServices(t)

	student := addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")

	found, err := svcs.Directory.FindByIdentifier("10001")
	require.NoError(t, err)
	assert.Same(t, student, found)

	_, err = svcs.Directory.FindByIdentifier("99999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	// The durable write happened alongside the in-memory add.
	assert.Contains(t, store.records, "10001")
}

func TestDirectoryRejectsDuplicateIdentifier(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")

	dup, err := models.NewStudent("10001", "Anna", "Schmidt", "Business Administration", nil)
	require.NoError(t, err)

	err = svcs.Directory.Add(context.Background(), dup)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateIdentifier)

	// The original entry is untouched.
	found, err := svcs.Directory.FindByIdentifier("10001")
	require.NoError(t, err)
	assert.Equal(t, "Max", found.FirstName())
}

func TestDirectoryFailingStoreKeepsRoster(t *testing.T) {
	svcs, store := newTestServices(t)
	store.failing = true

	student, err := models.NewStudent("10001", "Max", "Mustermann", "Computer Science", nil)
	require.NoError(t, err)

	// The add succeeds even though nothing was persisted.
	require.NoError(t, svcs.Directory.Add(context.Background(), student))
	_, err = svcs.Directory.FindByIdentifier("10001")
	assert.NoError(t, err)

	// Same for removal.
	assert.True(t, svcs.Directory.Remove(context.Background(), "10001"))
	_, err = svcs.Directory.FindByIdentifier("10001")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDirectoryHydrateSkipsInvalidRows(t *testing.T) {
	store := newMemStore()
	store.records["10001"] = repositories.StudentRecord{
		Identifier: "10001", FirstName: "Max", LastName: "Mustermann", Program: "Computer Science",
	}
	// Corrupt rows: bad identifier and blank name.
	store.records["bad"] = repositories.StudentRecord{
		Identifier: "bad", FirstName: "Eve", LastName: "Error", Program: "Physics",
	}
	store.records["10002"] = repositories.StudentRecord{
		Identifier: "10002", FirstName: "", LastName: "Schmidt", Program: "Physics",
	}

	svcs := NewServices(store, Config{}, zerolog.Nop())
	require.NoError(t, svcs.Directory.Hydrate(context.Background()))

	all := svcs.Directory.SortedAll(models.SortByIdentifier)
	require.Len(t, all, 1)
	assert.Equal(t, "10001", all[0].Identifier())
}

func TestDirectorySearch(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addStudent(t, svcs, "10002", "Anna", "Schmidt", "Business Administration")
	addStudent(t, svcs, "10003", "Tom", "Weber", "Computer Science")

	byName := svcs.Directory.SearchByName("mUSTER")
	require.Len(t, byName, 1)
	assert.Equal(t, "10001", byName[0].Identifier())

	byProgram := svcs.Directory.SearchByProgram("computer")
	require.Len(t, byProgram, 2)
	assert.Equal(t, "Mustermann", byProgram[0].LastName())
	assert.Equal(t, "Weber", byProgram[1].LastName())

	assert.Empty(t, svcs.Directory.SearchByName("nobody"))
}

func TestDirectorySortedAll(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10003", "Tom", "Weber", "Computer Science")
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addStudent(t, svcs, "10002", "Anna", "Schmidt", "Business Administration")

	byID := svcs.Directory.SortedAll(models.SortByIdentifier)
	assert.Equal(t, []string{"10001", "10002", "10003"}, identifiers(byID))

	bySurname := svcs.Directory.SortedAll(models.SortBySurname)
	assert.Equal(t, []string{"10001", "10002", "10003"}, identifiers(bySurname))

	byFirst := svcs.Directory.SortedAll(models.SortByFirstName)
	assert.Equal(t, []string{"10002", "10001", "10003"}, identifiers(byFirst))

	byProgram := svcs.Directory.SortedAll(models.SortByProgram)
	assert.Equal(t, "10002", byProgram[0].Identifier(), "Business Administration sorts first")
}

func TestDirectoryStudentsAtRisk(t *testing.T) {
	svcs, _ := newTestServices(t)
	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addStudent(t, svcs, "10002", "Anna", "Schmidt", "Business Administration")
	addStudent(t, svcs, "10003", "Tom", "Weber", "Computer Science")
	addExam(t, svcs, "OOP2025", fixtureSitting, fixtureDeadline)

	record := func(identifier string, score float64) {
		_, err := svcs.Attempts.Record(identifier, "OOP2025", score, fixtureSitting)
		require.NoError(t, err)
	}

	record("10001", 3.7) // at risk
	record("10002", 2.0) // fine
	record("10003", 4.0) // worst, still passed

	atRisk := svcs.Directory.StudentsAtRisk()
	assert.Equal(t, []string{"10003", "10001"}, identifiers(atRisk), "worst average first")
}

func TestDirectoryIdentifierStatistics(t *testing.T) {
	svcs, _ := newTestServices(t)

	assert.Zero(t, svcs.Directory.IdentifierStatistics().Count)

	addStudent(t, svcs, "10001", "Max", "Mustermann", "Computer Science")
	addStudent(t, svcs, "1234567", "Anna", "Schmidt", "Business Administration")

	stats := svcs.Directory.IdentifierStatistics()
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, "10001", stats.Lowest)
	assert.Equal(t, "1234567", stats.Highest)
	assert.InDelta(t, 6.0, stats.AverageLength, 0.0001)
}

func identifiers(students []*models.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.Identifier())
	}
	return out
}
