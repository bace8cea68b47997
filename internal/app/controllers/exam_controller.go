package controllers

import (
	"net/http"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/examdesk/examdesk/internal/app/services"
	"github.com/examdesk/examdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ExamController handles exam catalog operations.
type ExamController struct {
	services *services.Services
}

// NewExamController creates a new ExamController.
func NewExamController(svcs *services.Services) *ExamController {
	return &ExamController{services: svcs}
}

// CreateExam adds an exam to the catalog
// @Summary Create an exam
// @Description Creates an exam. The registration deadline must not fall after the sitting date.
// @Tags exams
// @Accept json
// @Produce json
// @Param request body dto.CreateExamRequest true "Exam information"
// @Success 201 {object} dto.APIResponse{data=dto.ExamResponse} "Exam created"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam data"
// @Failure 409 {object} dto.ErrorResponse "Exam code already in use"
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid exam data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exam, err := c.services.Exams.Create(req.Code, req.Title, req.Module, req.Sitting, req.Room, req.Deadline, req.MaxAttempts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewExamResponse(exam),
		Timestamp: time.Now(),
	})
}

// GetExam retrieves an exam by code
// @Summary Get exam by code
// @Tags exams
// @Produce json
// @Param code path string true "Exam code"
// @Success 200 {object} dto.APIResponse{data=dto.ExamResponse} "Exam retrieved"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{code} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	exam, err := c.services.Exams.Find(ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewExamResponse(exam),
		Timestamp: time.Now(),
	})
}

// ListExams lists the exam catalog
// @Summary List exams
// @Description Lists exams ordered by sitting time. With upcoming=true only future sittings are returned.
// @Tags exams
// @Produce json
// @Param upcoming query bool false "Only future sittings"
// @Success 200 {object} dto.APIResponse{data=dto.ExamListResponse} "Exams retrieved"
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	var exams []*models.Exam
	if ctx.Query("upcoming") == "true" {
		exams = c.services.Exams.Upcoming(time.Now())
	} else {
		exams = c.services.Exams.SortedAll()
	}

	resp := dto.ExamListResponse{Exams: make([]dto.ExamResponse, 0, len(exams))}
	for _, e := range exams {
		resp.Exams = append(resp.Exams, dto.NewExamResponse(e))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// UpdateExam updates an exam's mutable fields
// @Summary Update an exam
// @Description Updates an exam. The code is immutable.
// @Tags exams
// @Accept json
// @Produce json
// @Param code path string true "Exam code"
// @Param request body dto.UpdateExamRequest true "Updated exam information"
// @Success 200 {object} dto.APIResponse{data=dto.ExamResponse} "Exam updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam data"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{code} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	var req dto.UpdateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid exam data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exam, err := c.services.Exams.Update(ctx.Param("code"), req.Title, req.Module, req.Sitting, req.Room, req.Deadline, req.MaxAttempts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewExamResponse(exam),
		Timestamp: time.Now(),
	})
}

// DeleteExam removes an exam from the catalog
// @Summary Delete an exam
// @Description Deletes an exam. Exams with recorded attempts cannot be deleted.
// @Tags exams
// @Produce json
// @Param code path string true "Exam code"
// @Success 204 "Exam deleted"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam has recorded attempts"
// @Router /exams/{code} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	if err := c.services.Exams.Delete(ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetExamStatistics reports attempt statistics for one exam
// @Summary Exam statistics
// @Description Reports attempt counts, pass rate and the mean score of passed attempts for one exam.
// @Tags exams
// @Produce json
// @Param code path string true "Exam code"
// @Success 200 {object} dto.APIResponse{data=dto.ExamStatisticsResponse} "Statistics retrieved"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{code}/statistics [get]
func (c *ExamController) GetExamStatistics(ctx *gin.Context) {
	code := ctx.Param("code")
	stats, err := c.services.Attempts.Statistics(code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ExamStatisticsResponse{
			ExamCode:      code,
			TotalAttempts: stats.TotalAttempts,
			Passed:        stats.Passed,
			Failed:        stats.Failed,
			PassRate:      stats.PassRate,
			AverageScore:  stats.AverageScore,
		},
		Timestamp: time.Now(),
	})
}

// GetExamAttempts lists the attempts recorded for one exam
// @Summary List exam attempts
// @Tags exams
// @Produce json
// @Param code path string true "Exam code"
// @Success 200 {object} dto.APIResponse{data=dto.AttemptListResponse} "Attempts retrieved"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{code}/attempts [get]
func (c *ExamController) GetExamAttempts(ctx *gin.Context) {
	attempts, err := c.services.Attempts.ForExam(ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewAttemptListResponse(attempts),
		Timestamp: time.Now(),
	})
}
