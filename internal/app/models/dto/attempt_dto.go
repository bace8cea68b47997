package dto

import (
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
)

// RecordAttemptRequest represents a grading request for one sitting.
type RecordAttemptRequest struct {
	ExamCode string  `json:"examCode" binding:"required" example:"OOP2025"`
	Score    float64 `json:"score" binding:"required" example:"2.0"`
	Date     string  `json:"date,omitempty" example:"2025-07-15"` // optional, YYYY-MM-DD, defaults to today
}

// AttemptResponse represents one graded attempt.
type AttemptResponse struct {
	Identifier string  `json:"identifier" example:"10001"`
	ExamCode   string  `json:"examCode" example:"OOP2025"`
	Score      float64 `json:"score" example:"2.0"`
	Date       string  `json:"date" example:"2025-07-15"`
	Passed     bool    `json:"passed" example:"true"`
}

// AttemptListResponse represents a sequence of attempts in recording order.
type AttemptListResponse struct {
	Attempts []AttemptResponse `json:"attempts"`
}

// NewAttemptResponse maps an attempt to its response representation.
func NewAttemptResponse(a *models.Attempt) AttemptResponse {
	return AttemptResponse{
		Identifier: a.Student().Identifier(),
		ExamCode:   a.Exam().Code(),
		Score:      a.Score(),
		Date:       a.Date().Format(time.DateOnly),
		Passed:     a.Passed(),
	}
}

// NewAttemptListResponse maps a slice of attempts, preserving order.
func NewAttemptListResponse(attempts []*models.Attempt) AttemptListResponse {
	resp := AttemptListResponse{Attempts: make([]AttemptResponse, 0, len(attempts))}
	for _, a := range attempts {
		resp.Attempts = append(resp.Attempts, NewAttemptResponse(a))
	}
	return resp
}
