package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/notification"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	data, err := json.Marshal(n.Data)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (id, company_id, recipient_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
		RETURNING id
	`

	err = q.QueryRow(ctx, query,
		n.ID, n.CompanyID, n.RecipientID, string(n.Type), n.Title, n.Message, data, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// ListByRecipient implements notification.Repository.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, companyID string, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, recipient_id, type, title, message, data, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1 AND company_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, recipientID, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var out []notification.Notification
	for rows.Next() {
		var n notification.Notification
		var typ string
		var data []byte
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.RecipientID, &typ, &n.Title, &n.Message, &data, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = notification.NotificationType(typ)
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return out, nil
}
