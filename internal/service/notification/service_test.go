package notification

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/notification"
)

type memoryRepo struct {
	mu      sync.Mutex
	created []notification.Notification
}

func (m *memoryRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, n)
	return n, nil
}

func (m *memoryRepo) ListByRecipient(_ context.Context, recipientID string, _ string, limit int) ([]notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notification.Notification
	for _, n := range m.created {
		if n.RecipientID == recipientID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func TestQueueNotification_DrainsOnStop(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewNotificationService(repo, Config{WorkerCount: 1, QueueSize: 10})

	for i := 0; i < 3; i++ {
		err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
			RecipientID: "e1",
			CompanyID:   "c1",
			Type:        notification.TypeLatenessReported,
		})
		require.NoError(t, err)
	}

	svc.Stop()

	listed, err := svc.GetNotifications(context.Background(), "e1", "c1", 10)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
	for _, n := range listed {
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.CreatedAt.IsZero())
	}
}

func TestQueueNotification_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	repo := &memoryRepo{}
	svc := &service{
		repo:  repo,
		queue: make(chan notification.CreateNotificationRequest, 1),
	}

	req := notification.CreateNotificationRequest{RecipientID: "e1", Type: notification.TypeCheckoutSummary}
	require.NoError(t, svc.QueueNotification(context.Background(), req))
	assert.Error(t, svc.QueueNotification(context.Background(), req))
}
