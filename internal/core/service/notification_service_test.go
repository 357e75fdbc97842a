package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

func TestNotificationService_ProcessAndList(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Process(ctx, ports.NotificationInput{UserID: owner.UserID, Message: "hello", PostID: "p1"}); err != nil {
		t.Fatalf("process: %v", err)
	}
	if err := svc.Process(ctx, ports.NotificationInput{UserID: stranger.UserID, Message: "other"}); err != nil {
		t.Fatalf("process: %v", err)
	}

	list, err := svc.ListForUser(ctx, owner.UserID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Message != "hello" || list[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected notifications: %+v", list)
	}
}

func TestNotificationService_RejectsEmpty(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.NotificationInput{UserID: owner.UserID}); !errors.Is(err, errEmptyNotification) {
		t.Fatalf("expected errEmptyNotification, got %v", err)
	}
}

func TestNotificationService_ProcessWrapsStoreErrors(t *testing.T) {
	storeErr := errors.New("mongo down")
	svc := NewNotificationService(&stubNotificationRepo{createErr: storeErr}, zerolog.Nop())

	err := svc.Process(context.Background(), ports.NotificationInput{UserID: owner.UserID, Message: "m"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
