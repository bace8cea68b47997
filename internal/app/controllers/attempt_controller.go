package controllers

import (
	"net/http"
	"time"

	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/examdesk/examdesk/internal/app/services"
	"github.com/examdesk/examdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AttemptController handles grading operations.
type AttemptController struct {
	services *services.Services
}

// NewAttemptController creates a new AttemptController.
func NewAttemptController(svcs *services.Services) *AttemptController {
	return &AttemptController{services: svcs}
}

// RecordAttempt grades one sitting for a student
// @Summary Record an attempt
// @Description Records a graded attempt. Scores run from 1.0 (best) to 5.0 (worst); 4.0 still passes. A registration is not required.
// @Tags attempts
// @Accept json
// @Produce json
// @Param identifier path string true "Student identifier"
// @Param request body dto.RecordAttemptRequest true "Attempt information"
// @Success 201 {object} dto.APIResponse{data=dto.AttemptResponse} "Attempt recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid score or date"
// @Failure 404 {object} dto.ErrorResponse "Student or exam not found"
// @Router /students/{identifier}/attempts [post]
func (c *AttemptController) RecordAttempt(ctx *gin.Context) {
	var req dto.RecordAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attempt data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attempt date")
			errorDetail = errorDetail.WithField("date").WithDetails("Date must be YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		date = parsed
	}

	attempt, err := c.services.Attempts.Record(ctx.Param("identifier"), req.ExamCode, req.Score, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewAttemptResponse(attempt),
		Timestamp: time.Now(),
	})
}

// ListAttempts lists a student's attempts across all exams
// @Summary List student attempts
// @Tags attempts
// @Produce json
// @Param identifier path string true "Student identifier"
// @Success 200 {object} dto.APIResponse{data=dto.AttemptListResponse} "Attempts retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{identifier}/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	attempts, err := c.services.Attempts.ForStudent(ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewAttemptListResponse(attempts),
		Timestamp: time.Now(),
	})
}

// GetAverageGrade reports a student's grade average
// @Summary Student grade average
// @Description Reports the mean over the student's passed attempts. 0 means no grade yet.
// @Tags attempts
// @Produce json
// @Param identifier path string true "Student identifier"
// @Success 200 {object} dto.APIResponse "Average retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{identifier}/average [get]
func (c *AttemptController) GetAverageGrade(ctx *gin.Context) {
	avg, err := c.services.Attempts.AverageGrade(ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"identifier": ctx.Param("identifier"), "averageGrade": avg},
		Timestamp: time.Now(),
	})
}
