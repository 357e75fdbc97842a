package ports

import (
	"context"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns posts matching filter, newest first.
	List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DistinctBreeds(ctx context.Context) ([]domain.SpeciesBreeds, error)
	// DistinctValues returns the sorted non-empty values stored under field.
	DistinctValues(ctx context.Context, field string) ([]string, error)
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// List returns every comment, or only the comments of postID when non-empty.
	List(ctx context.Context, postID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
