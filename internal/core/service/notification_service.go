package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

var errEmptyNotification = errors.New("notification needs a user and a message")

type notificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{repo: repo, log: log}
}

// Process persists a queued notification. It is called by the dispatcher
// workers.
func (s *notificationService) Process(ctx context.Context, in ports.NotificationInput) error {
	n, err := s.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("process notification: %w", err)
	}
	s.log.Debug().Str("notification_id", n.ID).Str("user_id", n.UserID).Msg("notification stored")
	return nil
}

func (s *notificationService) Create(ctx context.Context, in ports.NotificationInput) (*domain.Notification, error) {
	if in.UserID == "" || in.Message == "" {
		return nil, errEmptyNotification
	}
	return s.repo.Create(ctx, &domain.Notification{
		UserID:    in.UserID,
		Message:   in.Message,
		PostID:    in.PostID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}
