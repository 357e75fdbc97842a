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

type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	logger   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, comments ports.CommentRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, comments: comments, logger: logger}
}

// Create stores a new post owned by the actor. Banned users cannot post.
func (s *PostService) Create(ctx context.Context, actor ports.Actor, in ports.PostInput) (*domain.Post, error) {
	if !domain.CanWrite(actor.Role) {
		return nil, domain.ErrForbidden
	}

	post := &domain.Post{
		Title:       strings.TrimSpace(in.Title),
		Species:     in.Species,
		Breed:       in.Breed,
		Color:       in.Color,
		Description: in.Description,
		Photos:      in.Photos,
		Suburb:      in.Suburb,
		ContactInfo: in.ContactInfo,
		Status:      domain.PostStatus(in.Status),
		UserID:      actor.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if post.Photos == nil {
		post.Photos = []string{}
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	s.logger.Info().Str("post_id", created.ID).Str("user_id", actor.UserID).Str("status", string(created.Status)).Msg("post created")
	return created, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error) {
	return s.posts.List(ctx, filter)
}

// Update applies the non-empty fields of in. Only the owner or an admin may
// update a post.
func (s *PostService) Update(ctx context.Context, actor ports.Actor, id string, in ports.PostInput) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor.UserID, post.UserID, actor.Role) {
		return nil, fmt.Errorf("update post %s: %w", id, domain.ErrForbidden)
	}

	setIfNotEmpty(&post.Title, in.Title)
	setIfNotEmpty(&post.Species, in.Species)
	setIfNotEmpty(&post.Breed, in.Breed)
	setIfNotEmpty(&post.Color, in.Color)
	setIfNotEmpty(&post.Description, in.Description)
	setIfNotEmpty(&post.Suburb, in.Suburb)
	setIfNotEmpty(&post.ContactInfo, in.ContactInfo)
	if in.Status != "" {
		post.Status = domain.PostStatus(in.Status)
	}
	if in.Photos != nil {
		post.Photos = in.Photos
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post and its comments. Only the owner or an admin may
// delete a post.
func (s *PostService) Delete(ctx context.Context, actor ports.Actor, id string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor.UserID, post.UserID, actor.Role) {
		return nil, fmt.Errorf("delete post %s: %w", id, domain.ErrForbidden)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}
	if n, err := s.comments.DeleteByPost(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("post_id", id).Msg("failed to delete comments of post")
	} else if n > 0 {
		s.logger.Debug().Str("post_id", id).Int64("comments", n).Msg("comments removed with post")
	}

	s.logger.Info().Str("post_id", id).Str("actor", actor.UserID).Msg("post deleted")
	return post, nil
}

func (s *PostService) Breeds(ctx context.Context) ([]domain.SpeciesBreeds, error) {
	return s.posts.DistinctBreeds(ctx)
}

// Distinct lists the values seen for one of the filterable post fields.
func (s *PostService) Distinct(ctx context.Context, field string) ([]string, error) {
	if !domain.IsDistinctField(field) {
		return nil, fmt.Errorf("%w %q", domain.ErrUnknownField, field)
	}
	return s.posts.DistinctValues(ctx, field)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
