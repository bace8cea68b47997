package controllers

import (
	"net/http"
	"time"

	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/examdesk/examdesk/internal/app/services"
	"github.com/gin-gonic/gin"
)

// StatisticsController handles the read-only aggregate endpoints.
type StatisticsController struct {
	services *services.Services
}

// NewStatisticsController creates a new StatisticsController.
func NewStatisticsController(svcs *services.Services) *StatisticsController {
	return &StatisticsController{services: svcs}
}

// GetOverview reports the system-wide dashboard aggregate
// @Summary System overview
// @Tags statistics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.OverviewResponse} "Overview retrieved"
// @Router /statistics/overview [get]
func (c *StatisticsController) GetOverview(ctx *gin.Context) {
	overview := c.services.Statistics.Overview()

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.OverviewResponse{
			StudentCount:      overview.Students,
			ExamCount:         overview.Exams,
			AttemptCount:      overview.Attempts,
			RegistrationCount: overview.Registrations,
			GradedStudents:    overview.GradedStudents,
			OverallAverage:    overview.OverallAverage,
		},
		Timestamp: time.Now(),
	})
}

// GetGradeDistribution buckets students by grade average
// @Summary Grade distribution
// @Tags statistics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GradeDistributionResponse} "Distribution retrieved"
// @Router /statistics/grade-distribution [get]
func (c *StatisticsController) GetGradeDistribution(ctx *gin.Context) {
	buckets := c.services.Statistics.GradeDistribution()

	resp := dto.GradeDistributionResponse{Buckets: make([]dto.GradeBucket, 0, len(buckets))}
	for _, b := range buckets {
		resp.Buckets = append(resp.Buckets, dto.GradeBucket{Label: b.Label, Count: b.Count})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetProgramStatistics aggregates the roster per program
// @Summary Per-program statistics
// @Tags statistics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ProgramStatisticsResponse} "Statistics retrieved"
// @Router /statistics/programs [get]
func (c *StatisticsController) GetProgramStatistics(ctx *gin.Context) {
	stats := c.services.Statistics.ByProgram()

	resp := dto.ProgramStatisticsResponse{Programs: make([]dto.ProgramStatisticsEntry, 0, len(stats))}
	for _, p := range stats {
		resp.Programs = append(resp.Programs, dto.ProgramStatisticsEntry{
			Program:      p.Program,
			StudentCount: p.Students,
			Average:      p.AverageGrade,
			GradedCount:  p.Graded,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetTopStudents lists the honors students
// @Summary Top students
// @Description Lists graded students with an average of 2.0 or better, best first, at most ten.
// @Tags statistics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Top students retrieved"
// @Router /statistics/top-students [get]
func (c *StatisticsController) GetTopStudents(ctx *gin.Context) {
	students := c.services.Statistics.TopStudents()

	out := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, dto.NewStudentResponse(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}
