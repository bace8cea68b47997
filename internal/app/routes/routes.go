package routes

import (
	"net/http"
	"time"

	"github.com/examdesk/examdesk/internal/app/controllers"
	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	examController *controllers.ExamController,
	registrationController *controllers.RegistrationController,
	attemptController *controllers.AttemptController,
	notificationController *controllers.NotificationController,
	statisticsController *controllers.StatisticsController,
) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// Student roster routes
	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/at-risk", studentController.GetAtRiskStudents)
		students.GET("/identifier-statistics", studentController.GetIdentifierStatistics)
		students.GET("/:identifier", studentController.GetStudent)
		students.DELETE("/:identifier", studentController.DeleteStudent)

		// Registrations scoped to one student
		students.GET("/:identifier/registrations", registrationController.ListRegistrations)
		students.POST("/:identifier/registrations", registrationController.Register)
		students.DELETE("/:identifier/registrations/:code", registrationController.Deregister)

		// Attempt ledger scoped to one student
		students.GET("/:identifier/attempts", attemptController.ListAttempts)
		students.POST("/:identifier/attempts", attemptController.RecordAttempt)
		students.GET("/:identifier/average", attemptController.GetAverageGrade)

		// Notification feed scoped to one student
		students.GET("/:identifier/notifications", notificationController.ListNotifications)
		students.POST("/:identifier/notifications/read-all", notificationController.MarkAllNotificationsRead)
	}

	// Exam catalog routes
	exams := v1.Group("/exams")
	{
		exams.GET("", examController.ListExams)
		exams.POST("", examController.CreateExam)
		exams.GET("/:code", examController.GetExam)
		exams.PUT("/:code", examController.UpdateExam)
		exams.DELETE("/:code", examController.DeleteExam)
		exams.GET("/:code/attempts", examController.GetExamAttempts)
		exams.GET("/:code/statistics", examController.GetExamStatistics)
	}

	// Notification routes not scoped to one student
	notifications := v1.Group("/notifications")
	{
		notifications.POST("/reminders", notificationController.SendDeadlineReminders)
		notifications.POST("/warnings", notificationController.SendAtRiskWarnings)
		notifications.POST("/read-all", notificationController.MarkEveryNotificationRead)
		notifications.POST("/:id/read", notificationController.MarkNotificationRead)
		notifications.DELETE("/:id", notificationController.DeleteNotification)
	}

	// Aggregate statistics routes
	statistics := v1.Group("/statistics")
	{
		statistics.GET("/overview", statisticsController.GetOverview)
		statistics.GET("/grade-distribution", statisticsController.GetGradeDistribution)
		statistics.GET("/programs", statisticsController.GetProgramStatistics)
		statistics.GET("/top-students", statisticsController.GetTopStudents)
	}
}
