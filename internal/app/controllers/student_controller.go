package controllers

import (
	"net/http"
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/examdesk/examdesk/internal/app/services"
	"github.com/examdesk/examdesk/internal/middleware"
	"github.com/examdesk/examdesk/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// StudentController handles roster operations.
type StudentController struct {
	services *services.Services
}

// NewStudentController creates a new StudentController.
func NewStudentController(svcs *services.Services) *StudentController {
	return &StudentController{services: svcs}
}

// CreateStudent enrolls a new student
// @Summary Enroll a student
// @Description Adds a student to the roster. The identifier must be 5-8 digits and unused.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 409 {object} dto.ErrorResponse "Identifier already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.BirthDate)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid birth date")
			errorDetail = errorDetail.WithField("birthDate").WithDetails("Birth date must be YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		birthDate = &parsed
	}

	student, err := models.NewStudent(req.Identifier, req.FirstName, req.LastName, req.Program, birthDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.services.Directory.Add(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewStudentResponse(student),
		Timestamp: time.Now(),
	})
}

// GetStudent retrieves a student by identifier
// @Summary Get student by identifier
// @Tags students
// @Produce json
// @Param identifier path string true "Student identifier"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{identifier} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.services.Directory.FindByIdentifier(ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewStudentResponse(student),
		Timestamp: time.Now(),
	})
}

// ListStudents lists the roster with optional filtering and sorting
// @Summary List students
// @Description Lists the roster, optionally filtered by name or program and sorted by a criterion.
// @Tags students
// @Produce json
// @Param name query string false "Filter by name fragment (case-insensitive)"
// @Param program query string false "Filter by program fragment (case-insensitive)"
// @Param sort query string false "Sort criterion" Enums(identifier, surname, firstName, program)
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Students retrieved"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var students []*models.Student
	switch {
	case ctx.Query("name") != "":
		students = c.services.Directory.SearchByName(ctx.Query("name"))
	case ctx.Query("program") != "":
		students = c.services.Directory.SearchByProgram(ctx.Query("program"))
	default:
		students = c.services.Directory.SortedAll(models.ParseSortCriterion(ctx.Query("sort")))
	}

	page, size := helpers.ParsePaginationParams(ctx)
	start, end := helpers.CalculateSliceIndices(page, size, len(students))

	resp := dto.StudentListResponse{
		Students:       make([]dto.StudentResponse, 0, end-start),
		PaginationInfo: helpers.NewPaginationInfo(int64(len(students)), page, size),
	}
	for _, s := range students[start:end] {
		resp.Students = append(resp.Students, dto.NewStudentResponse(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes a student from the roster
// @Summary Remove a student
// @Tags students
// @Produce json
// @Param identifier path string true "Student identifier"
// @Success 204 "Student removed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{identifier} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if !c.services.Directory.Remove(ctx, ctx.Param("identifier")) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetAtRiskStudents lists students whose grade average is above the risk threshold
// @Summary List at-risk students
// @Description Lists students whose grade average is worse than 3.0, worst first.
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "At-risk students retrieved"
// @Router /students/at-risk [get]
func (c *StudentController) GetAtRiskStudents(ctx *gin.Context) {
	students := c.services.Directory.StudentsAtRisk()
	out := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, dto.NewStudentResponse(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}

// GetIdentifierStatistics reports aggregate identifier statistics
// @Summary Identifier statistics
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.IdentifierStatisticsResponse} "Statistics retrieved"
// @Router /students/identifier-statistics [get]
func (c *StudentController) GetIdentifierStatistics(ctx *gin.Context) {
	stats := c.services.Directory.IdentifierStatistics()

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.IdentifierStatisticsResponse{
			Count:         stats.Count,
			Lowest:        stats.Lowest,
			Highest:       stats.Highest,
			AverageLength: stats.AverageLength,
		},
		Timestamp: time.Now(),
	})
}
