package ports

import (
	"context"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

// NotificationInput is the DTO handed to the notification dispatcher.
type NotificationInput struct {
	UserID  string
	Message string
	PostID  string
}

// NotificationService stores and lists notifications.
type NotificationService interface {
	Process(ctx context.Context, in NotificationInput) error
	Create(ctx context.Context, in NotificationInput) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error)
}
