package notification

import (
	"context"
)

// Repository persists queued notifications.
type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, companyID string, limit int) ([]Notification, error)
}
