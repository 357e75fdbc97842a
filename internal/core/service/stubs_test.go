package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var idSeq int

func nextID() string {
	idSeq++
	return fmt.Sprintf("%024x", idSeq)
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
		if existing.Email == u.Email {
			return nil, domain.ErrEmailExists
		}
	}
	c := cloneUser(u)
	c.ID = nextID()
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByRole(_ context.Context, roleID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.RoleID == roleID {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

// newSeededRoleRepo returns a repo holding the default roles.
func newSeededRoleRepo() *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, role := range domain.DefaultRoles {
		role := role
		_, _ = r.Upsert(context.Background(), &role)
	}
	return r
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		clone := *role
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubRoleRepo) Upsert(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	if existing, err := r.FindByName(ctx, role.Name); err == nil {
		return existing, nil
	}
	clone := *role
	clone.ID = nextID()
	r.roles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) id(name string) string {
	role, _ := r.FindByName(context.Background(), name)
	if role == nil {
		return ""
	}
	return role.ID
}

type stubPostRepo struct {
	posts map[string]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	clone := *p
	clone.ID = nextID()
	r.posts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) List(_ context.Context, f domain.PostFilter) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Species != "" && p.Species != f.Species {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	clone := *p
	r.posts[p.ID] = &clone
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, p := range r.posts {
		if p.UserID == userID {
			delete(r.posts, id)
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) DistinctBreeds(_ context.Context) ([]domain.SpeciesBreeds, error) {
	return nil, nil
}

func (r *stubPostRepo) DistinctValues(_ context.Context, field string) ([]string, error) {
	if field != "status" {
		return nil, nil
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range r.posts {
		if s := string(p.Status); s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

type stubCommentRepo struct {
	comments map[string]*domain.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	clone := *c
	clone.ID = nextID()
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) List(_ context.Context, postID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if postID != "" && c.PostID != postID {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) deleteWhere(match func(*domain.Comment) bool) int64 {
	var n int64
	for id, c := range r.comments {
		if match(c) {
			delete(r.comments, id)
			n++
		}
	}
	return n
}

func (r *stubCommentRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	return r.deleteWhere(func(c *domain.Comment) bool { return c.UserID == userID }), nil
}

func (r *stubCommentRepo) DeleteByPost(_ context.Context, postID string) (int64, error) {
	return r.deleteWhere(func(c *domain.Comment) bool { return c.PostID == postID }), nil
}

type stubNotificationRepo struct {
	items     []*domain.Notification
	createErr error
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *n
	clone.ID = nextID()
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	kept := r.items[:0]
	var n int64
	for _, item := range r.items {
		if item.UserID == userID {
			n++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return n, nil
}

type stubNotifier struct {
	queued []ports.NotificationInput
}

func (n *stubNotifier) Enqueue(in ports.NotificationInput) {
	n.queued = append(n.queued, in)
}
