package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

type stubCommentService struct {
	comments map[string]*domain.Comment
}

func (s *stubCommentService) Create(_ context.Context, actor ports.Actor, postID, content string) (*domain.Comment, error) {
	return &domain.Comment{ID: "c-new", Content: content, UserID: actor.UserID, PostID: postID}, nil
}

func (s *stubCommentService) Get(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return c, nil
}

func (s *stubCommentService) List(context.Context, string) ([]*domain.Comment, error) {
	return nil, nil
}

func (s *stubCommentService) Delete(ctx context.Context, actor ports.Actor, id string) (*domain.Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor.UserID, c.UserID, actor.Role) {
		return nil, domain.ErrForbidden
	}
	delete(s.comments, id)
	return c, nil
}

func TestCommentHandler_Delete(t *testing.T) {
	cases := []struct {
		name   string
		caller string
		role   string
		want   int
		msg    string
	}{
		{"non-admin other user", bobID, domain.RoleRegular, http.StatusForbidden, "You are not authorized to delete this comment."},
		{"admin", adminID, domain.RoleAdmin, http.StatusOK, ""},
		{"author", aliceID, domain.RoleRegular, http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCommentService{comments: map[string]*domain.Comment{
				"c1": {ID: "c1", Content: "seen near the park", UserID: aliceID, PostID: "p1"},
			}}
			h := NewCommentHandler(svc)

			e, c, rec := newTestContext(http.MethodDelete, "/comments/c1", "")
			c.SetParamNames("commentId")
			c.SetParamValues("c1")
			as(c, tc.caller, tc.role)

			serve(t, e, c, h.Delete)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if tc.msg != "" {
				var resp map[string]string
				decode(t, rec, &resp)
				if resp["error"] != tc.msg {
					t.Fatalf("unexpected message %q", resp["error"])
				}
				if _, ok := svc.comments["c1"]; !ok {
					t.Fatalf("comment should survive")
				}
			}
		})
	}
}
