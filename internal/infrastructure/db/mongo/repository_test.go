package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := objectID(oid.Hex(), domain.ErrPostNotFound)
	if err != nil || got != oid {
		t.Fatalf("expected %s, got %s (%v)", oid.Hex(), got.Hex(), err)
	}

	_, err = objectID("not-hex", domain.ErrPostNotFound)
	if !errors.Is(err, domain.ErrInvalidID) || !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrInvalidID and ErrPostNotFound, got %v", err)
	}
}

func TestPostFilter(t *testing.T) {
	userID := primitive.NewObjectID()
	f := postFilter(domain.PostFilter{Species: "Dog", Suburb: "St. Kilda", Status: "lost", UserID: userID.Hex()})

	re, ok := f["suburb"].(primitive.Regex)
	if !ok {
		t.Fatalf("suburb should be a regex, got %T", f["suburb"])
	}
	if re.Pattern != `^St\. Kilda$` || re.Options != "i" {
		t.Fatalf("unexpected regex: %+v", re)
	}
	if f["status"] != "lost" || f["user_id"] != userID {
		t.Fatalf("unexpected filter: %v", f)
	}
	if _, ok := f["breed"]; ok {
		t.Fatalf("empty fields must not filter")
	}
}

func TestUserDocumentRoundTrip(t *testing.T) {
	roleID := primitive.NewObjectID().Hex()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	u := &domain.User{Username: "tester1", Email: "tester1@test.com", PasswordHash: "$2a$10$x", RoleID: roleID, CreatedAt: created, UpdatedAt: created}

	doc, err := toMongoUser(u)
	if err != nil {
		t.Fatalf("to doc: %v", err)
	}
	doc.ID = primitive.NewObjectID()
	back := doc.toDomain()
	if back.RoleID != roleID || back.Email != u.Email || !back.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", back)
	}

	u.RoleID = ""
	if _, err := toMongoUser(u); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("a user without role must be rejected, got %v", err)
	}
}
