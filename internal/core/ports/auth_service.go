package ports

import (
	"context"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// ProfileUpdate carries optional profile changes. Empty fields are left as is.
type ProfileUpdate struct {
	Username string
	Email    string
	Password string
}

// AuthResult is returned whenever a fresh token is issued for a user.
type AuthResult struct {
	Token string
	User  *domain.User
	Role  string
}

// UserService covers account lifecycle and credential checks.
type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Signin(ctx context.Context, email, password string) (*AuthResult, error)
	EditProfile(ctx context.Context, userID string, in ProfileUpdate) (*AuthResult, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	AssignRole(ctx context.Context, userID, roleName string) (*domain.User, error)
}

// RoleResolver maps users to roles and back.
type RoleResolver interface {
	RoleOf(ctx context.Context, user *domain.User) (*domain.Role, error)
	UsersInRole(ctx context.Context, roleName string) ([]*domain.User, error)
	RoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]*domain.Role, error)
}
