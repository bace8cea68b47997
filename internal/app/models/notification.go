package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a notification.
type NotificationType string

const (
	NotificationRegistration     NotificationType = "REGISTRATION_CONFIRMATION"
	NotificationGradeAvailable   NotificationType = "GRADE_AVAILABLE"
	NotificationDeadlineReminder NotificationType = "DEADLINE_REMINDER"
	NotificationWarning          NotificationType = "WARNING"
)

// Notification is a message produced by the dispatcher in reaction to a
// domain event. Identity is generated on creation; the only mutation ever
// applied is marking it read.
type Notification struct {
	id        string
	typ       NotificationType
	recipient *Student
	message   string
	createdAt time.Time
	read      bool
}

// NewNotification creates an unread notification with a generated identity.
func NewNotification(typ NotificationType, recipient *Student, message string) *Notification {
	return &Notification{
		id:        uuid.NewString(),
		typ:       typ,
		recipient: recipient,
		message:   message,
		createdAt: time.Now(),
	}
}

func (n *Notification) ID() string             { return n.id }
func (n *Notification) Type() NotificationType { return n.typ }
func (n *Notification) Recipient() *Student    { return n.recipient }
func (n *Notification) Message() string        { return n.message }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }
func (n *Notification) Read() bool             { return n.read }

// MarkRead flags the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	n.read = true
}
