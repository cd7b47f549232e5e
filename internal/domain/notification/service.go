package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// QueueNotification enqueues a fact for async persistence; it never
	// blocks the attendance path
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	// GetNotifications lists a recipient's recent notifications
	GetNotifications(ctx context.Context, recipientID string, companyID string, limit int) ([]Notification, error)

	// Stop drains the queue and stops the background workers
	Stop()
}
