package dto

import (
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
)

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"10001"`
	FirstName  string `json:"firstName" binding:"required" example:"Max"`
	LastName   string `json:"lastName" binding:"required" example:"Mustermann"`
	Program    string `json:"program" binding:"required" example:"Computer Science"`
	BirthDate  string `json:"birthDate,omitempty" example:"2000-05-15"` // optional, YYYY-MM-DD
}

// StudentResponse represents basic student information
type StudentResponse struct {
	Identifier   string  `json:"identifier" example:"10001"`
	FirstName    string  `json:"firstName" example:"Max"`
	LastName     string  `json:"lastName" example:"Mustermann"`
	Program      string  `json:"program" example:"Computer Science"`
	BirthDate    *string `json:"birthDate,omitempty" example:"2000-05-15"`
	AverageGrade float64 `json:"averageGrade" example:"2.3"` // 0 when no passed attempts yet
}

// StudentListResponse represents a page of students
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
	PaginationInfo
}

// NewStudentResponse maps a roster entity to its response representation.
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		Identifier:   s.Identifier(),
		FirstName:    s.FirstName(),
		LastName:     s.LastName(),
		Program:      s.Program(),
		AverageGrade: s.AverageGrade(),
	}
	if bd := s.BirthDate(); bd != nil {
		formatted := bd.Format(time.DateOnly)
		resp.BirthDate = &formatted
	}
	return resp
}

// IdentifierStatisticsResponse reports aggregate identifier statistics.
type IdentifierStatisticsResponse struct {
	Count         int     `json:"count" example:"5"`
	Lowest        string  `json:"lowest" example:"10001"`
	Highest       string  `json:"highest" example:"10005"`
	AverageLength float64 `json:"averageLength" example:"5.0"`
}
