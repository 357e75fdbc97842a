package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("123456aB!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "123456aB!" {
		t.Fatalf("expected hashed value, got plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$04$") {
		t.Fatalf("expected self-describing bcrypt hash, got %q", hash)
	}
	if !h.Verify("123456aB!", hash) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("123456aB?", hash) {
		t.Fatalf("expected different password to be rejected")
	}
}

func TestHasher_SaltsEveryHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestHasher_DefaultCost(t *testing.T) {
	h := NewHasher(0)
	if h.cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d", DefaultCost, h.cost)
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("secret", "not-a-hash") {
		t.Fatalf("malformed hash must not verify")
	}
}
