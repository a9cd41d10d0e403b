package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/heartlink/internal/repository"

	"gorm.io/gorm"
)

func setupMessageServiceTest(t *testing.T) (*MessageService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, "message_service_test")
	svc := NewMessageService(
		repository.NewMatchRepository(db),
		repository.NewMessageRepository(db),
	)
	return svc, db
}

func TestSendMessageGuards(t *testing.T) {
	svc, db := setupMessageServiceTest(t)
	alice := createCompleteUser(t, db, "alice@example.com")
	bob := createCompleteUser(t, db, "bob@example.com")
	eve := createCompleteUser(t, db, "eve@example.com")
	match := createMatch(t, db, alice.ID, bob.ID)

	if _, err := svc.SendMessage(match.ID, alice.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := svc.SendMessage(9999, alice.ID, "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
	if _, err := svc.SendMessage(match.ID, eve.ID, "hi"); !errors.Is(err, ErrNotMatchParticipant) {
		t.Fatalf("expected ErrNotMatchParticipant, got %v", err)
	}

	view, err := svc.SendMessage(match.ID, alice.ID, "  hey bob  ")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if view.Content != "hey bob" {
		t.Fatalf("expected trimmed content, got %q", view.Content)
	}
	if view.MatchID != match.ID || view.SenderID != alice.ID {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestListMessagesGuards(t *testing.T) {
	svc, db := setupMessageServiceTest(t)
	alice := createCompleteUser(t, db, "alice@example.com")
	bob := createCompleteUser(t, db, "bob@example.com")
	eve := createCompleteUser(t, db, "eve@example.com")
	match := createMatch(t, db, alice.ID, bob.ID)

	if _, err := svc.ListMessages(9999, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
	if _, err := svc.ListMessages(match.ID, eve.ID); !errors.Is(err, ErrNotMatchParticipant) {
		t.Fatalf("expected ErrNotMatchParticipant, got %v", err)
	}

	views, err := svc.ListMessages(match.ID, bob.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty conversation, got %d messages", len(views))
	}
}

func TestMessagesListedInSendOrder(t *testing.T) {
	svc, db := setupMessageServiceTest(t)
	alice := createCompleteUser(t, db, "alice@example.com")
	bob := createCompleteUser(t, db, "bob@example.com")
	match := createMatch(t, db, alice.ID, bob.ID)

	senders := []uint{alice.ID, bob.ID, alice.ID, alice.ID, bob.ID}
	for i, sender := range senders {
		if _, err := svc.SendMessage(match.ID, sender, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("send %d failed: %v", i, err)
		}
	}

	views, err := svc.ListMessages(match.ID, alice.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != len(senders) {
		t.Fatalf("expected %d messages, got %d", len(senders), len(views))
	}
	for i, v := range views {
		if v.Content != fmt.Sprintf("message %d", i) {
			t.Fatalf("message %d out of order: %q", i, v.Content)
		}
		if v.SenderID != senders[i] {
			t.Fatalf("message %d sender mismatch: %d", i, v.SenderID)
		}
	}
}
