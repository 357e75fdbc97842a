package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

func newPostFixture() (*PostService, *stubPostRepo, *stubCommentRepo) {
	posts := newStubPostRepo()
	comments := newStubCommentRepo()
	return NewPostService(posts, comments, zerolog.Nop()), posts, comments
}

var (
	owner    = ports.Actor{UserID: "aaaaaaaaaaaaaaaaaaaaaaaa", Role: domain.RoleRegular}
	stranger = ports.Actor{UserID: "bbbbbbbbbbbbbbbbbbbbbbbb", Role: domain.RoleRegular}
	admin    = ports.Actor{UserID: "cccccccccccccccccccccccc", Role: domain.RoleAdmin}
	banned   = ports.Actor{UserID: "dddddddddddddddddddddddd", Role: domain.RoleBanned}
)

func lostDog() ports.PostInput {
	return ports.PostInput{
		Title:   "Lost kelpie",
		Species: "dog",
		Breed:   "kelpie",
		Suburb:  "Fitzroy",
		Status:  string(domain.StatusLost),
	}
}

func TestPostService_Create(t *testing.T) {
	svc, _, _ := newPostFixture()

	post, err := svc.Create(context.Background(), owner, lostDog())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.UserID != owner.UserID {
		t.Fatalf("post should belong to the actor")
	}
	if post.Photos == nil {
		t.Fatalf("photos should default to an empty list")
	}
	if post.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}
}

func TestPostService_Create_Banned(t *testing.T) {
	svc, posts, _ := newPostFixture()

	if _, err := svc.Create(context.Background(), banned, lostDog()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(posts.posts) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestPostService_Update_Policy(t *testing.T) {
	svc, _, _ := newPostFixture()
	ctx := context.Background()
	post, _ := svc.Create(ctx, owner, lostDog())

	if _, err := svc.Update(ctx, stranger, post.ID, ports.PostInput{Title: "mine now"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	updated, err := svc.Update(ctx, owner, post.ID, ports.PostInput{Status: string(domain.StatusFound)})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Status != domain.StatusFound || updated.Title != "Lost kelpie" {
		t.Fatalf("unexpected post after update: %+v", updated)
	}

	if _, err := svc.Update(ctx, admin, post.ID, ports.PostInput{Title: "moderated"}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	svc, posts, comments := newPostFixture()
	ctx := context.Background()
	post, _ := svc.Create(ctx, owner, lostDog())
	_, _ = comments.Create(ctx, &domain.Comment{Content: "seen it", UserID: stranger.UserID, PostID: post.ID})

	if _, err := svc.Delete(ctx, stranger, post.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := svc.Delete(ctx, admin, post.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(posts.posts) != 0 || len(comments.comments) != 0 {
		t.Fatalf("post and its comments should be gone")
	}

	if _, err := svc.Delete(ctx, admin, post.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_ListByUser(t *testing.T) {
	svc, _, _ := newPostFixture()
	ctx := context.Background()
	_, _ = svc.Create(ctx, owner, lostDog())
	_, _ = svc.Create(ctx, owner, lostDog())
	_, _ = svc.Create(ctx, stranger, lostDog())

	list, err := svc.List(ctx, domain.PostFilter{UserID: owner.UserID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(list))
	}
}

func TestPostService_Distinct(t *testing.T) {
	svc, _, _ := newPostFixture()
	ctx := context.Background()
	_, _ = svc.Create(ctx, owner, lostDog())
	found := lostDog()
	found.Status = string(domain.StatusFound)
	_, _ = svc.Create(ctx, stranger, found)

	values, err := svc.Distinct(ctx, "status")
	if err != nil {
		t.Fatalf("distinct: %v", err)
	}
	if len(values) != 2 || values[0] != "found" || values[1] != "lost" {
		t.Fatalf("unexpected values: %v", values)
	}

	for _, field := range []string{"", "contact_info", "user_id", "$where"} {
		if _, err := svc.Distinct(ctx, field); !errors.Is(err, domain.ErrUnknownField) {
			t.Fatalf("%q: expected ErrUnknownField, got %v", field, err)
		}
	}
}
