package services

import (
	"sort"
	"sync"

	"github.com/examdesk/examdesk/internal/app/models"
)

// TopStudentsLimit caps the honors listing.
const TopStudentsLimit = 10

// TopStudentThreshold is the best average still counted as honors material.
const TopStudentThreshold = 2.0

// Overview is the engine-wide dashboard aggregate.
type Overview struct {
	Students      int
	Exams         int
	Attempts      int
	Registrations int
	// GradedStudents counts students with at least one passed attempt.
	GradedStudents int
	// OverallAverage is the mean of the graded students' averages, 0 when
	// nobody has a grade yet.
	OverallAverage float64
}

// GradeBucket is one slice of the grade distribution.
type GradeBucket struct {
	Label string
	Count int
}

// ProgramStatistics aggregates one program's students.
type ProgramStatistics struct {
	Program string
	// Students in the program, graded or not.
	Students int
	// Graded counts students with at least one passed attempt.
	Graded int
	// AverageGrade over the program's graded students, 0 when none.
	AverageGrade float64
}

// StatisticsService answers the read-only aggregate queries over the roster
// and the catalog. It never mutates engine state.
type StatisticsService struct {
	mu        *sync.Mutex
	directory *DirectoryService
	exams     *ExamService
}

func newStatisticsService(mu *sync.Mutex, directory *DirectoryService, exams *ExamService) *StatisticsService {
	return &StatisticsService{mu: mu, directory: directory, exams: exams}
}

// Overview computes the dashboard counters in one pass.
func (s *StatisticsService) Overview() Overview {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Overview
	var gradeSum float64

	for _, student := range s.directory.all() {
		out.Students++
		out.Attempts += len(student.Attempts())
		out.Registrations += len(student.RegisteredExams())
		if avg := student.AverageGrade(); avg > 0 {
			out.GradedStudents++
			gradeSum += avg
		}
	}
	out.Exams = len(s.exams.sortedAll())
	if out.GradedStudents > 0 {
		out.OverallAverage = gradeSum / float64(out.GradedStudents)
	}
	return out
}

// GradeDistribution buckets students by their grade average. Students without
// a grade land in the trailing "no grade" bucket.
func (s *StatisticsService) GradeDistribution() []GradeBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets := []GradeBucket{
		{Label: "1.0 - 1.5"},
		{Label: "1.6 - 2.0"},
		{Label: "2.1 - 2.5"},
		{Label: "2.6 - 3.0"},
		{Label: "3.1 - 3.5"},
		{Label: "3.6 - 4.0"},
		{Label: "> 4.0"},
		{Label: "no grade"},
	}

	for _, student := range s.directory.all() {
		avg := student.AverageGrade()
		switch {
		case avg == 0:
			buckets[7].Count++
		case avg <= 1.5:
			buckets[0].Count++
		case avg <= 2.0:
			buckets[1].Count++
		case avg <= 2.5:
			buckets[2].Count++
		case avg <= 3.0:
			buckets[3].Count++
		case avg <= 3.5:
			buckets[4].Count++
		case avg <= 4.0:
			buckets[5].Count++
		default:
			buckets[6].Count++
		}
	}
	return buckets
}

// ByProgram aggregates the roster per program, ordered by program name.
func (s *StatisticsService) ByProgram() []ProgramStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	type acc struct {
		students int
		graded   int
		sum      float64
	}
	programs := make(map[string]*acc)

	for _, student := range s.directory.all() {
		a := programs[student.Program()]
		if a == nil {
			a = &acc{}
			programs[student.Program()] = a
		}
		a.students++
		if avg := student.AverageGrade(); avg > 0 {
			a.graded++
			a.sum += avg
		}
	}

	out := make([]ProgramStatistics, 0, len(programs))
	for program, a := range programs {
		entry := ProgramStatistics{Program: program, Students: a.students, Graded: a.graded}
		if a.graded > 0 {
			entry.AverageGrade = a.sum / float64(a.graded)
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Program < out[j].Program })
	return out
}

// TopStudents returns the graded students with an average of 2.0 or better,
// best first, capped at the honors limit.
func (s *StatisticsService) TopStudents() []*models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Student
	for _, student := range s.directory.all() {
		if avg := student.AverageGrade(); avg > 0 && avg <= TopStudentThreshold {
			out = append(out, student)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].AverageGrade(), out[j].AverageGrade()
		if ai != aj {
			return ai < aj
		}
		return out[i].Identifier() < out[j].Identifier()
	})
	if len(out) > TopStudentsLimit {
		out = out[:TopStudentsLimit]
	}
	return out
}
