package domain

import (
	"strings"
	"time"
)

// User models a registered account. Every user references exactly one Role.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       string    `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds a User already bound to its role. The caller resolves the
// role beforehand; a nil role yields ErrRoleNotFound.
func NewUser(username, email, passwordHash string, role *Role) (*User, error) {
	if role == nil || role.ID == "" {
		return nil, ErrRoleNotFound
	}
	now := time.Now().UTC()
	return &User{
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// TokenPayload is the identity carried, encrypted, inside a bearer token.
type TokenPayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Payload returns the token payload describing u.
func (u *User) Payload() TokenPayload {
	return TokenPayload{UserID: u.ID, Username: u.Username, Email: u.Email}
}
