package dto

// OverviewResponse reports headline counts across the whole system.
type OverviewResponse struct {
	StudentCount      int     `json:"studentCount" example:"5"`
	ExamCount         int     `json:"examCount" example:"3"`
	AttemptCount      int     `json:"attemptCount" example:"8"`
	RegistrationCount int     `json:"registrationCount" example:"6"`
	GradedStudents    int     `json:"gradedStudents" example:"3"`
	OverallAverage    float64 `json:"overallAverage" example:"2.45"` // over students with a grade, 0 when none
}

// GradeBucket is one bar of the grade-distribution histogram.
type GradeBucket struct {
	Label string `json:"label" example:"1.0-1.5"`
	Count int    `json:"count" example:"2"`
}

// GradeDistributionResponse reports the distribution of student averages.
type GradeDistributionResponse struct {
	Buckets []GradeBucket `json:"buckets"`
}

// ProgramStatisticsEntry reports per-program aggregates.
type ProgramStatisticsEntry struct {
	Program      string  `json:"program" example:"Computer Science"`
	StudentCount int     `json:"studentCount" example:"2"`
	Average      float64 `json:"average" example:"2.1"` // over graded students, 0 when none
	GradedCount  int     `json:"gradedCount" example:"1"`
}

// ProgramStatisticsResponse lists per-program aggregates.
type ProgramStatisticsResponse struct {
	Programs []ProgramStatisticsEntry `json:"programs"`
}
