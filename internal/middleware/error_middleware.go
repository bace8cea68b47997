package middleware

import (
	"errors"
	"net/http"

	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/examdesk/examdesk/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// HandleAPIError maps engine errors to HTTP responses. Typed domain-rule
// errors carry their context into the error detail; everything unknown
// becomes a 500.
func HandleAPIError(c *gin.Context, err error) {
	var deadlineErr *apperrors.DeadlineExpiredError
	var conflictErr *apperrors.ScheduleConflictError
	var attemptsErr *apperrors.HasAttemptsError

	switch {
	case errors.As(err, &deadlineErr):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeDeadlineExpired, err.Error()).
				WithDetails(gin.H{
					"examCode": deadlineErr.ExamCode,
					"deadline": deadlineErr.Deadline.Format("2006-01-02"),
				}),
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, err.Error()).
				WithDetails(gin.H{
					"examCode":           conflictErr.ExamCode,
					"conflictingCode":    conflictErr.ConflictingCode,
					"conflictingTitle":   conflictErr.ConflictingTitle,
					"conflictingSitting": conflictErr.ConflictingSitting,
				}),
		})
	case errors.As(err, &attemptsErr):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeHasAttempts, err.Error()).
				WithDetails(gin.H{
					"identifier": attemptsErr.Identifier,
					"examCode":   attemptsErr.ExamCode,
					"attempts":   attemptsErr.Attempts,
				}),
		})
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrExamNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()),
		})
	case errors.Is(err, apperrors.ErrDuplicateIdentifier),
		errors.Is(err, apperrors.ErrDuplicateExam):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()),
		})
	case errors.Is(err, apperrors.ErrExamHasAttempts):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeHasAttempts, err.Error()),
		})
	case errors.Is(err, apperrors.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidIdentifier, err.Error()).WithField("identifier"),
		})
	case errors.Is(err, apperrors.ErrInvalidScore),
		errors.Is(err, apperrors.ErrInvalidExamDates),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
