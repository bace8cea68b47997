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

// NotificationController handles the notification feed.
type NotificationController struct {
	services *services.Services
}

// NewNotificationController creates a new NotificationController.
func NewNotificationController(svcs *services.Services) *NotificationController {
	return &NotificationController{services: svcs}
}

// ListNotifications lists a student's notifications
// @Summary List notifications
// @Description Lists the student's notifications in creation order. With unread=true only unread ones are returned.
// @Tags notifications
// @Produce json
// @Param identifier path string true "Student identifier"
// @Param unread query bool false "Only unread notifications"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{identifier}/notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	student, err := c.services.Directory.FindByIdentifier(ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var feed []*models.Notification
	if ctx.Query("unread") == "true" {
		feed = c.services.Notifications.UnreadFor(student)
	} else {
		feed = c.services.Notifications.AllFor(student)
	}
	unread := len(c.services.Notifications.UnreadFor(student))

	page, size := helpers.ParsePaginationParams(ctx)
	start, end := helpers.CalculateSliceIndices(page, size, len(feed))

	resp := dto.NotificationListResponse{
		Notifications:  make([]dto.NotificationResponse, 0, end-start),
		UnreadCount:    unread,
		PaginationInfo: helpers.NewPaginationInfo(int64(len(feed)), page, size),
	}
	for _, n := range feed[start:end] {
		resp.Notifications = append(resp.Notifications, dto.NewNotificationResponse(n))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// MarkNotificationRead marks one notification as read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationResponse} "Notification marked read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkNotificationRead(ctx *gin.Context) {
	n, err := c.services.Notifications.MarkRead(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewNotificationResponse(n),
		Timestamp: time.Now(),
	})
}

// MarkAllNotificationsRead marks all of a student's notifications as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Param identifier path string true "Student identifier"
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse} "Notifications marked read"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{identifier}/notifications/read-all [post]
func (c *NotificationController) MarkAllNotificationsRead(ctx *gin.Context) {
	student, err := c.services.Directory.FindByIdentifier(ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	marked := c.services.Notifications.MarkAllRead(student)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.MarkReadResponse{Marked: marked},
		Timestamp: time.Now(),
	})
}

// MarkEveryNotificationRead marks the whole feed as read
// @Summary Mark every notification read
// @Description Marks every notification of every student as read.
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse} "Notifications marked read"
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkEveryNotificationRead(ctx *gin.Context) {
	marked := c.services.Notifications.MarkAllReadEveryone()

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.MarkReadResponse{Marked: marked},
		Timestamp: time.Now(),
	})
}

// DeleteNotification removes a notification from the feed
// @Summary Delete notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 204 "Notification deleted"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	if err := c.services.Notifications.Delete(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SendDeadlineReminders runs a bulk deadline-reminder sweep
// @Summary Send deadline reminders
// @Description Creates one reminder per student and exam where the student has not registered yet and the deadline falls within the horizon. Repeated runs create repeated reminders.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body dto.RemindersRequest false "Reference date, defaults to today"
// @Success 200 {object} dto.APIResponse{data=dto.BulkNotifyResponse} "Reminders created"
// @Failure 400 {object} dto.ErrorResponse "Invalid reference date"
// @Router /notifications/reminders [post]
func (c *NotificationController) SendDeadlineReminders(ctx *gin.Context) {
	var req dto.RemindersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reminder request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	asOf := time.Now()
	if req.AsOf != "" {
		parsed, err := time.Parse(time.DateOnly, req.AsOf)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reference date")
			errorDetail = errorDetail.WithField("asOf").WithDetails("Date must be YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		asOf = parsed
	}

	created := c.services.Notifications.BulkDeadlineReminders(asOf)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.BulkNotifyResponse{Created: len(created)},
		Timestamp: time.Now(),
	})
}

// SendAtRiskWarnings warns every student above the risk threshold
// @Summary Send at-risk warnings
// @Description Creates one warning per student whose grade average is worse than 3.0.
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BulkNotifyResponse} "Warnings created"
// @Router /notifications/warnings [post]
func (c *NotificationController) SendAtRiskWarnings(ctx *gin.Context) {
	created := c.services.Notifications.WarnAtRisk()

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.BulkNotifyResponse{Created: len(created)},
		Timestamp: time.Now(),
	})
}
