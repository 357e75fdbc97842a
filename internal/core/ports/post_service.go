package ports

import (
	"context"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	UserID string
	Role   string
}

// PostInput carries the writable fields of a post. On update, empty fields
// keep their stored value.
type PostInput struct {
	Title       string
	Species     string
	Breed       string
	Color       string
	Description string
	Photos      []string
	Suburb      string
	ContactInfo string
	Status      string
}

// PostService defines use-case operations for posts.
type PostService interface {
	Create(ctx context.Context, actor Actor, in PostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error)
	Update(ctx context.Context, actor Actor, id string, in PostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor Actor, id string) (*domain.Post, error)
	Breeds(ctx context.Context) ([]domain.SpeciesBreeds, error)
	Distinct(ctx context.Context, field string) ([]string, error)
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	Create(ctx context.Context, actor Actor, postID, content string) (*domain.Comment, error)
	Get(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context, postID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, actor Actor, id string) (*domain.Comment, error)
}
