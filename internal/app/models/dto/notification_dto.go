package dto

import (
	"time"

	"github.com/examdesk/examdesk/internal/app/models"
)

// NotificationResponse represents one notification.
type NotificationResponse struct {
	ID        string    `json:"id" example:"b2f7c9a4-5cc8-4f6e-9f2a-1f1a88d9a001"`
	Type      string    `json:"type" example:"REGISTRATION_CONFIRMATION"`
	Recipient string    `json:"recipient" example:"10001"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read" example:"false"`
}

// NotificationListResponse represents a page of notifications in creation order.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount" example:"3"`
	PaginationInfo
}

// RemindersRequest triggers a bulk deadline-reminder run.
type RemindersRequest struct {
	AsOf string `json:"asOf,omitempty" example:"2025-06-28"` // optional, YYYY-MM-DD, defaults to today
}

// BulkNotifyResponse reports how many notifications a bulk run created.
type BulkNotifyResponse struct {
	Created int `json:"created" example:"4"`
}

// MarkReadResponse reports how many notifications a mark-read sweep flipped
// to read.
type MarkReadResponse struct {
	Marked int `json:"marked" example:"2"`
}

// NewNotificationResponse maps a notification to its response representation.
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID(),
		Type:      string(n.Type()),
		Recipient: n.Recipient().Identifier(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
		Read:      n.Read(),
	}
}
