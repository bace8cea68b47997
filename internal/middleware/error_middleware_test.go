package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"exam not found", apperrors.ErrExamNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate identifier", apperrors.ErrDuplicateIdentifier, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"exam has attempts", apperrors.ErrExamHasAttempts, http.StatusConflict, dto.ErrorCodeHasAttempts},
		{"invalid identifier", apperrors.ErrInvalidIdentifier, http.StatusBadRequest, dto.ErrorCodeInvalidIdentifier},
		{"invalid score", apperrors.ErrInvalidScore, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handle(t, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorCarriesDomainContext(t *testing.T) {
	err := &apperrors.DeadlineExpiredError{
		ExamCode: "OOP2025",
		Deadline: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	rec, body := handle(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeDeadlineExpired, body.Error.Code)

	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "OOP2025", details["examCode"])
	assert.Equal(t, "2025-07-01", details["deadline"])
}

func TestHandleAPIErrorScheduleConflict(t *testing.T) {
	err := &apperrors.ScheduleConflictError{
		ExamCode:           "MATH1",
		ConflictingCode:    "OOP2025",
		ConflictingTitle:   "Object-Oriented Programming",
		ConflictingSitting: time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC),
	}

	rec, body := handle(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeScheduleConflict, body.Error.Code)
}
