package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLatenessReported  NotificationType = "lateness_reported"
	TypeCheckoutSummary   NotificationType = "checkout_summary"
	TypeSessionAutoClosed NotificationType = "session_auto_closed"
)

// Notification carries an attendance fact to a recipient. The engine
// only emits facts ("12 minutes late"); delivery transports live
// elsewhere and drain this queue.
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	CreatedAt   time.Time
}

// CreateNotificationRequest queues one notification.
type CreateNotificationRequest struct {
	CompanyID   string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}
