package controllers

import (
	"net/http"
	"time"

	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/examdesk/examdesk/internal/app/services"
	"github.com/examdesk/examdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegistrationController handles exam registration operations.
type RegistrationController struct {
	services *services.Services
}

// NewRegistrationController creates a new RegistrationController.
func NewRegistrationController(svcs *services.Services) *RegistrationController {
	return &RegistrationController{services: svcs}
}

// Register registers a student for an exam
// @Summary Register for an exam
// @Description Registers the student for the exam. The registration deadline is checked first, then schedule conflicts. Registering twice is accepted silently.
// @Tags registrations
// @Accept json
// @Produce json
// @Param identifier path string true "Student identifier"
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Registration confirmed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or exam not found"
// @Failure 409 {object} dto.ErrorResponse "Deadline expired or schedule conflict"
// @Router /students/{identifier}/registrations [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.services.Registrations.Register(ctx.Param("identifier"), req.ExamCode, time.Now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Registration confirmed"},
		Timestamp: time.Now(),
	})
}

// Deregister withdraws a student's registration
// @Summary Withdraw a registration
// @Description Withdraws the registration. A registration with recorded attempts is locked in.
// @Tags registrations
// @Produce json
// @Param identifier path string true "Student identifier"
// @Param code path string true "Exam code"
// @Success 204 "Registration withdrawn"
// @Failure 404 {object} dto.ErrorResponse "Student or exam not found"
// @Failure 409 {object} dto.ErrorResponse "Attempts already recorded"
// @Router /students/{identifier}/registrations/{code} [delete]
func (c *RegistrationController) Deregister(ctx *gin.Context) {
	err := c.services.Registrations.Deregister(ctx.Param("identifier"), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListRegistrations lists a student's registrations with status
// @Summary List registrations
// @Description Lists the student's registrations. The status reflects the attempt ledger.
// @Tags registrations
// @Produce json
// @Param identifier path string true "Student identifier"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationListResponse} "Registrations retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{identifier}/registrations [get]
func (c *RegistrationController) ListRegistrations(ctx *gin.Context) {
	identifier := ctx.Param("identifier")
	entries, err := c.services.Registrations.RegistrationsFor(identifier)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.RegistrationListResponse{
		Identifier:    identifier,
		Registrations: make([]dto.RegistrationResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Registrations = append(resp.Registrations, dto.RegistrationResponse{
			ExamCode: entry.Exam.Code(),
			Title:    entry.Exam.Title(),
			Sitting:  entry.Exam.Sitting().Format(time.RFC3339),
			Status:   string(entry.Status),
			Attempts: entry.Attempts,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
