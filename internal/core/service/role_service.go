package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// RoleService resolves a user's role and lists the members of a role.
type RoleService struct {
	roles  ports.RoleRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, users: users, logger: logger}
}

// RoleOf returns the role referenced by user. A dangling reference is a data
// error and is reported as ErrRoleNotFound rather than defaulted.
func (s *RoleService) RoleOf(ctx context.Context, user *domain.User) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) || errors.Is(err, domain.ErrInvalidID) {
			s.logger.Error().Str("user_id", user.ID).Str("role_id", user.RoleID).Msg("user references a missing role")
			return nil, fmt.Errorf("role of user %s: %w", user.ID, domain.ErrRoleNotFound)
		}
		return nil, fmt.Errorf("role of user %s: %w", user.ID, err)
	}
	return role, nil
}

// UsersInRole lists the users holding roleName. An unknown role yields an
// empty list.
func (s *RoleService) UsersInRole(ctx context.Context, roleName string) ([]*domain.User, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return []*domain.User{}, nil
		}
		return nil, err
	}

	users, err := s.users.FindByRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *RoleService) RoleByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.roles.FindByName(ctx, name)
}

func (s *RoleService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

// EnsureDefaultRoles seeds the regular, admin and banned roles. It is safe
// to run on every start.
func (s *RoleService) EnsureDefaultRoles(ctx context.Context) error {
	for _, r := range domain.DefaultRoles {
		role := r
		created, err := s.roles.Upsert(ctx, &role)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
		s.logger.Debug().Str("role", created.Name).Str("role_id", created.ID).Msg("role ready")
	}
	return nil
}
