package middleware

import (
	"net/http"
	"testing"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/security"
)

func TestRoleRestrict_AdminAllowed(t *testing.T) {
	rec, called := chain(t, "Bearer good-admin1", tokensFor(security.ErrTokenInvalid, admin1), RoleRestrict(domain.RoleAdmin))
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Authorization") != "Bearer fresh-admin1" {
		t.Fatalf("admin should receive a refreshed token")
	}
}

func TestRoleRestrict_RegularRejected(t *testing.T) {
	rec, called := chain(t, "Bearer good-tester1", tokensFor(security.ErrTokenInvalid, tester1), RoleRestrict(domain.RoleAdmin))
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	errs := decodeErrors(t, rec)
	if len(errs) != 1 || errs[0] != MsgUnauthorized {
		t.Fatalf("expected [Unauthorized], got %v", errs)
	}
}

func TestRoleRestrict_AfterFailedAuthReportsOnce(t *testing.T) {
	rec, _ := chain(t, "", tokensFor(security.ErrTokenInvalid), RoleRestrict(domain.RoleAdmin))
	errs := decodeErrors(t, rec)
	if len(errs) != 1 {
		t.Fatalf("expected a single error, got %v", errs)
	}
}

func TestRoleRestrict_AfterExpiredToken(t *testing.T) {
	rec, _ := chain(t, "Bearer old", tokensFor(security.ErrTokenExpired), RoleRestrict(domain.RoleAdmin))
	errs := decodeErrors(t, rec)
	if len(errs) != 2 || errs[0] != MsgTokenExpired || errs[1] != MsgUnauthorized {
		t.Fatalf("expected [Token expired Unauthorized], got %v", errs)
	}
}
