package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// Notifier queues a notification for asynchronous delivery.
type Notifier interface {
	Enqueue(in ports.NotificationInput)
}

type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, notifier Notifier, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifier: notifier, logger: logger}
}

// Create adds a comment to postID and notifies the post owner when the
// commenter is someone else.
func (s *CommentService) Create(ctx context.Context, actor ports.Actor, postID, content string) (*domain.Comment, error) {
	if !domain.CanWrite(actor.Role) {
		return nil, domain.ErrForbidden
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		Content:   strings.TrimSpace(content),
		UserID:    actor.UserID,
		PostID:    post.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && post.UserID != actor.UserID {
		s.notifier.Enqueue(ports.NotificationInput{
			UserID:  post.UserID,
			PostID:  post.ID,
			Message: fmt.Sprintf("New comment on your post %q", post.Title),
		})
	}

	s.logger.Info().Str("comment_id", created.ID).Str("post_id", post.ID).Msg("comment created")
	return created, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*domain.Comment, error) {
	return s.comments.FindByID(ctx, id)
}

func (s *CommentService) List(ctx context.Context, postID string) ([]*domain.Comment, error) {
	return s.comments.List(ctx, postID)
}

// Delete removes a comment. Only its author or an admin may delete it.
func (s *CommentService) Delete(ctx context.Context, actor ports.Actor, id string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor.UserID, comment.UserID, actor.Role) {
		return nil, fmt.Errorf("delete comment %s: %w", id, domain.ErrForbidden)
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info().Str("comment_id", id).Str("actor", actor.UserID).Msg("comment deleted")
	return comment, nil
}
