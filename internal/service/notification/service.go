package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/notification"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type service struct {
	repo   notification.Repository
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewNotificationService creates a notification service with background
// workers draining the queue into storage. The attendance path only ever
// enqueues; persistence failures are logged, never surfaced to the
// caller.
func NewNotificationService(repo notification.Repository, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for req := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n := notification.Notification{
			ID:          uuid.NewString(),
			CompanyID:   req.CompanyID,
			RecipientID: req.RecipientID,
			Type:        req.Type,
			Title:       req.Title,
			Message:     req.Message,
			Data:        req.Data,
			CreatedAt:   time.Now(),
		}
		if _, err := s.repo.Create(ctx, n); err != nil {
			slog.Error("failed to persist notification", "worker", id, "type", req.Type, "error", err)
		}
		cancel()
	}
}

// QueueNotification implements notification.Service. A full queue drops
// the fact rather than blocking attendance operations.
func (s *service) QueueNotification(_ context.Context, req notification.CreateNotificationRequest) error {
	select {
	case s.queue <- req:
		return nil
	default:
		return fmt.Errorf("notification queue is full, dropping %s", req.Type)
	}
}

// GetNotifications implements notification.Service.
func (s *service) GetNotifications(ctx context.Context, recipientID string, companyID string, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListByRecipient(ctx, recipientID, companyID, limit)
}

// Stop implements notification.Service. It drains whatever is already
// queued before returning.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}
