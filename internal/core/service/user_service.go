package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// TokenIssuer mints bearer tokens for a payload.
type TokenIssuer interface {
	Issue(payload domain.TokenPayload) (string, error)
}

// UserService implements signup, signin and account management.
type UserService struct {
	users         ports.UserRepository
	roles         ports.RoleRepository
	posts         ports.PostRepository
	comments      ports.CommentRepository
	notifications ports.NotificationRepository
	hasher        PasswordHasher
	tokens        TokenIssuer
	logger        zerolog.Logger
}

// UserServiceDeps groups the collaborators of UserService.
type UserServiceDeps struct {
	Users         ports.UserRepository
	Roles         ports.RoleRepository
	Posts         ports.PostRepository
	Comments      ports.CommentRepository
	Notifications ports.NotificationRepository
	Hasher        PasswordHasher
	Tokens        TokenIssuer
	Logger        zerolog.Logger
}

func NewUserService(d UserServiceDeps) *UserService {
	return &UserService{
		users:         d.Users,
		roles:         d.Roles,
		posts:         d.Posts,
		comments:      d.Comments,
		notifications: d.Notifications,
		hasher:        d.Hasher,
		tokens:        d.Tokens,
		logger:        d.Logger,
	}
}

// Signup creates a regular user and returns a token for it.
func (s *UserService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.ensureUnique(ctx, "", in.Username, in.Email); err != nil {
		return nil, err
	}

	user, role, err := s.createUser(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.Payload())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", role.Name).Msg("user signed up")
	return &ports.AuthResult{Token: token, User: created, Role: role.Name}, nil
}

// createUser resolves the default role and builds the entity with a hashed
// password.
func (s *UserService) createUser(ctx context.Context, in ports.SignupInput) (*domain.User, *domain.Role, error) {
	role, err := s.roles.FindByName(ctx, domain.RoleRegular)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve default role: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user, err := domain.NewUser(in.Username, in.Email, hash, role)
	if err != nil {
		return nil, nil, err
	}
	return user, role, nil
}

// Signin checks the credentials. Unknown email and wrong password produce the
// same ErrInvalidCredentials.
func (s *UserService) Signin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Msg("signin with unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug().Str("user_id", user.ID).Msg("signin with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Payload())
	if err != nil {
		return nil, err
	}

	res := &ports.AuthResult{Token: token, User: user}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Str("role_id", user.RoleID).Msg("user references a missing role")
		return res, nil
	}
	res.Role = role.Name
	return res, nil
}

// EditProfile applies the non-empty fields of in to the user and issues a
// token carrying the updated identity.
func (s *UserService) EditProfile(ctx context.Context, userID string, in ports.ProfileUpdate) (*ports.AuthResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, user.ID, in.Username, in.Email); err != nil {
		return nil, err
	}

	if in.Username != "" {
		user.Username = strings.TrimSpace(in.Username)
	}
	if in.Email != "" {
		user.Email = normalizeEmail(in.Email)
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Payload())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Delete removes the user together with their posts, comments and
// notifications.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	posts, err := s.posts.DeleteByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete posts of %s: %w", id, err)
	}
	comments, err := s.comments.DeleteByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete comments of %s: %w", id, err)
	}
	if _, err := s.notifications.DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("delete notifications of %s: %w", id, err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Int64("posts", posts).Int64("comments", comments).Msg("user deleted")
	return nil
}

// AssignRole moves the user to the named role.
func (s *UserService) AssignRole(ctx context.Context, userID, roleName string) (*domain.User, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.RoleID = role.ID
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", role.Name).Msg("role assigned")
	return user, nil
}

// ensureUnique rejects a username or email already used by another user.
func (s *UserService) ensureUnique(ctx context.Context, selfID, username, email string) error {
	if username != "" {
		existing, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
		switch {
		case err == nil && existing.ID != selfID:
			return domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return err
		}
	}
	if email != "" {
		existing, err := s.users.FindByEmail(ctx, normalizeEmail(email))
		switch {
		case err == nil && existing.ID != selfID:
			return domain.ErrEmailExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return err
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
