package dto

import (
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
)

// CreateExamRequest represents exam creation data
type CreateExamRequest struct {
	Code        string    `json:"code" binding:"required" example:"OOP2025"`
	Title       string    `json:"title" binding:"required" example:"Object-Oriented Programming"`
	Module      string    `json:"module" example:"Computer Science Foundations"`
	Sitting     time.Time `json:"sitting" binding:"required" example:"2025-07-15T10:00:00Z"`
	Room        string    `json:"room" example:"H1"`
	Deadline    time.Time `json:"deadline" binding:"required" example:"2025-07-01T00:00:00Z"`
	MaxAttempts int       `json:"maxAttempts" binding:"required" example:"3"`
}

// UpdateExamRequest represents exam update data; the code is immutable.
type UpdateExamRequest struct {
	Title       string    `json:"title" binding:"required"`
	Module      string    `json:"module"`
	Sitting     time.Time `json:"sitting" binding:"required"`
	Room        string    `json:"room"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	MaxAttempts int       `json:"maxAttempts" binding:"required"`
}

// ExamResponse represents basic exam information
type ExamResponse struct {
	Code              string    `json:"code" example:"OOP2025"`
	Title             string    `json:"title" example:"Object-Oriented Programming"`
	Module            string    `json:"module,omitempty"`
	Sitting           time.Time `json:"sitting"`
	Room              string    `json:"room,omitempty" example:"H1"`
	Deadline          string    `json:"deadline" example:"2025-07-01"`
	MaxAttempts       int       `json:"maxAttempts" example:"3"`
	RegisteredCount   int       `json:"registeredCount" example:"12"`
}

// ExamListResponse represents a list of exams
type ExamListResponse struct {
	Exams []ExamResponse `json:"exams"`
}

// NewExamResponse maps an exam entity to its response representation.
func NewExamResponse(e *models.Exam) ExamResponse {
	return ExamResponse{
		Code:            e.Code(),
		Title:           e.Title(),
		Module:          e.Module(),
		Sitting:         e.Sitting(),
		Room:            e.Room(),
		Deadline:        e.Deadline().Format(time.DateOnly),
		MaxAttempts:     e.MaxAttempts(),
		RegisteredCount: len(e.RegisteredStudents()),
	}
}

// ExamStatisticsResponse reports the attempt statistics of one exam.
type ExamStatisticsResponse struct {
	ExamCode      string  `json:"examCode" example:"OOP2025"`
	TotalAttempts int     `json:"totalAttempts" example:"10"`
	Passed        int     `json:"passed" example:"7"`
	Failed        int     `json:"failed" example:"3"`
	PassRate      float64 `json:"passRate" example:"70.0"` // percent
	AverageScore  float64 `json:"averageScore" example:"2.4"` // over passed attempts, 0 when none passed
}
