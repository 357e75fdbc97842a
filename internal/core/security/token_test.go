package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

type stubUsers map[string]*domain.User

func (s stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

var tester = &domain.User{ID: "64b7f0c2a1b2c3d4e5f60718", Username: "tester1", Email: "tester1@test.com", RoleID: "r1"}

func newTokenSvc(t *testing.T, signing, enc string, now func() time.Time) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{SigningSecret: signing, Now: now}, newTestCipher(t, enc), stubUsers{tester.ID: tester})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return svc
}

func dataClaim(t *testing.T, token string) string {
	t.Helper()
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parse unverified: %v", err)
	}
	return claims.Data
}

func TestTokenService_IssueAndRefresh(t *testing.T) {
	svc := newTokenSvc(t, "jwt-secret", "enc-secret", nil)

	token, err := svc.Issue(tester.Payload())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	res, err := svc.VerifyAndRefresh(context.Background(), token)
	if err != nil {
		t.Fatalf("verify and refresh: %v", err)
	}
	if res.User.ID != tester.ID || res.User.Username != "tester1" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.Payload != tester.Payload() {
		t.Fatalf("unexpected payload: %+v", res.Payload)
	}
	if res.Token == "" || res.Token == token {
		t.Fatalf("expected a new token string")
	}
	if dataClaim(t, res.Token) != dataClaim(t, token) {
		t.Fatalf("refresh must carry the encrypted payload unchanged")
	}

	again, err := svc.VerifyAndRefresh(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("refreshed token should verify: %v", err)
	}
	if again.User.ID != tester.ID {
		t.Fatalf("expected same user on repeated refresh, got %s", again.User.ID)
	}
}

func TestTokenService_PayloadIsEncrypted(t *testing.T) {
	svc := newTokenSvc(t, "jwt-secret", "enc-secret", nil)

	token, _ := svc.Issue(tester.Payload())
	data := dataClaim(t, token)
	if data == "" {
		t.Fatalf("expected data claim")
	}

	var p domain.TokenPayload
	if err := svc.cipher.DecryptObject(data, &p); err != nil || p.Username != "tester1" {
		t.Fatalf("data claim should decrypt to the payload: %v %+v", err, p)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old := newTokenSvc(t, "jwt-secret", "enc-secret", past)
	svc := newTokenSvc(t, "jwt-secret", "enc-secret", nil)

	token, err := old.Issue(tester.Payload())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	res, err := svc.VerifyAndRefresh(context.Background(), token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if res != nil {
		t.Fatalf("expired token must not be refreshed")
	}
}

func TestTokenService_ExpiresAfterOneDay(t *testing.T) {
	svc := newTokenSvc(t, "jwt-secret", "enc-secret", nil)
	token, _ := svc.Issue(tester.Payload())

	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	life := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if life != DefaultTokenTTL {
		t.Fatalf("expected lifetime %s, got %s", DefaultTokenTTL, life)
	}
}

func TestTokenService_WrongSignature(t *testing.T) {
	forger := newTokenSvc(t, "other-secret", "enc-secret", nil)
	svc := newTokenSvc(t, "jwt-secret", "enc-secret", nil)

	token, _ := forger.Issue(tester.Payload())
	if _, err := svc.VerifyAndRefresh(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestTokenService_ForeignCipher(t *testing.T) {
	foreign := newTokenSvc(t, "jwt-secret", "other-enc", nil)
	svc := newTokenSvc(t, "jwt-secret", "enc-secret", nil)

	token, _ := foreign.Issue(tester.Payload())
	if _, err := svc.VerifyAndRefresh(context.Background(), token); !errors.Is(err, ErrDecryption) {
		t.Fatalf("expected ErrDecryption, got %v", err)
	}
}

func TestTokenService_UnknownUser(t *testing.T) {
	svc := newTokenSvc(t, "jwt-secret", "enc-secret", nil)

	token, _ := svc.Issue(domain.TokenPayload{UserID: "ffffffffffffffffffffffff", Username: "ghost", Email: "ghost@test.com"})
	res, err := svc.VerifyAndRefresh(context.Background(), token)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if res != nil {
		t.Fatalf("unknown user must not get a token")
	}

	// Verify alone does not consult the user store.
	if p, err := svc.Verify(token); err != nil || p.Username != "ghost" {
		t.Fatalf("verify: %v %+v", err, p)
	}
}

func TestNewTokenService_MissingSecret(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{}, newTestCipher(t, "enc"), stubUsers{}); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}
