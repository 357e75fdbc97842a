package security

import "errors"

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrDecryption   = errors.New("payload decryption failed")
	ErrMissingKey   = errors.New("missing secret")
)
