package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotFound       = errors.New("role not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrUnknownField       = errors.New("unknown post field")
)
