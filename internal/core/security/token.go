package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of every issued or refreshed token.
const DefaultTokenTTL = 24 * time.Hour

// TokenConfig configures a TokenService.
type TokenConfig struct {
	// SigningSecret is the HS256 key. Required.
	SigningSecret string
	// TTL defaults to DefaultTokenTTL.
	TTL time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// UserFinder loads the user a token refers to.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Refreshed is the outcome of a successful VerifyAndRefresh.
type Refreshed struct {
	User    *domain.User
	Payload domain.TokenPayload
	Token   string
}

type tokenClaims struct {
	Data string `json:"data"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens whose only custom claim is
// the encrypted payload.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	cipher *Cipher
	users  UserFinder
}

// NewTokenService returns a TokenService. It fails when the signing secret
// or the cipher is missing.
func NewTokenService(cfg TokenConfig, c *Cipher, users UserFinder) (*TokenService, error) {
	if cfg.SigningSecret == "" {
		return nil, fmt.Errorf("token service: %w", ErrMissingKey)
	}
	if c == nil {
		return nil, errors.New("token service: nil cipher")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		secret: []byte(cfg.SigningSecret),
		ttl:    ttl,
		now:    now,
		cipher: c,
		users:  users,
	}, nil
}

// Issue encrypts payload and returns a signed token expiring after the TTL.
func (s *TokenService) Issue(payload domain.TokenPayload) (string, error) {
	data, err := s.cipher.EncryptObject(payload)
	if err != nil {
		return "", err
	}
	return s.sign(data)
}

// Verify checks signature and expiry and returns the decrypted payload.
func (s *TokenService) Verify(token string) (domain.TokenPayload, error) {
	_, payload, err := s.parse(token)
	return payload, err
}

// VerifyAndRefresh verifies token, resolves its user and returns a new token
// carrying the same encrypted data with a fresh expiry. No token is issued
// when verification fails or the user no longer exists.
func (s *TokenService) VerifyAndRefresh(ctx context.Context, token string) (*Refreshed, error) {
	claims, payload, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUserNotFound, err)
		}
		return nil, err
	}

	fresh, err := s.sign(claims.Data)
	if err != nil {
		return nil, err
	}
	return &Refreshed{User: user, Payload: payload, Token: fresh}, nil
}

func (s *TokenService) sign(data string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) parse(token string) (*tokenClaims, domain.TokenPayload, error) {
	var payload domain.TokenPayload

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, payload, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, payload, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Data == "" {
		return nil, payload, ErrTokenInvalid
	}

	if err := s.cipher.DecryptObject(claims.Data, &payload); err != nil {
		return nil, payload, err
	}
	if payload.UserID == "" {
		return nil, payload, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}
	return claims, payload, nil
}
