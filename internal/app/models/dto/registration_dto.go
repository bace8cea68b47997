package dto

// RegisterRequest represents a registration request for an exam.
type RegisterRequest struct {
	ExamCode string `json:"examCode" binding:"required" example:"OOP2025"`
}

// Registration outcome status values, derived from the attempt ledger.
const (
	RegistrationStatusRegistered = "REGISTERED" // no attempt recorded yet
	RegistrationStatusPassed     = "PASSED"
	RegistrationStatusFailed     = "FAILED" // attempted, not yet passed
)

// RegistrationResponse represents one registration with its derived status.
type RegistrationResponse struct {
	ExamCode string `json:"examCode" example:"OOP2025"`
	Title    string `json:"title" example:"Object-Oriented Programming"`
	Sitting  string `json:"sitting" example:"2025-07-15T10:00:00Z"`
	Status   string `json:"status" example:"REGISTERED" enums:"REGISTERED,PASSED,FAILED"`
	Attempts int    `json:"attempts" example:"0"`
}

// RegistrationListResponse represents a student's registrations.
type RegistrationListResponse struct {
	Identifier    string                 `json:"identifier" example:"10001"`
	Registrations []RegistrationResponse `json:"registrations"`
}
