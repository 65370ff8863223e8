package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

type memChatRepo struct {
	chats  map[string]*entity.Chat
	nextID int
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{chats: map[string]*entity.Chat{}}
}

func (m *memChatRepo) GetByParticipants(_ context.Context, userA, userB string) (*entity.Chat, error) {
	for _, c := range m.chats {
		if c.HasParticipant(userA) && c.HasParticipant(userB) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memChatRepo) Create(_ context.Context, participantIDs []string) (*entity.Chat, error) {
	m.nextID++
	c := &entity.Chat{
		ID:        fmt.Sprintf("chat-%d", m.nextID),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for _, id := range participantIDs {
		c.Participants = append(c.Participants, entity.Redacted{ID: id})
	}
	m.chats[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m *memChatRepo) GetByID(_ context.Context, id string) (*entity.Chat, error) {
	c, ok := m.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memChatRepo) ListByUser(_ context.Context, userID string) ([]entity.Chat, error) {
	var out []entity.Chat
	for _, c := range m.chats {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memChatRepo) AddMessage(_ context.Context, msg *entity.Message) error {
	c, ok := m.chats[msg.ChatID]
	if !ok {
		return repository.ErrNotFound
	}
	msg.ID = fmt.Sprintf("msg-%d", len(c.Messages)+1)
	msg.CreatedAt = time.Now()
	c.Messages = append(c.Messages, *msg)
	return nil
}

func newTestChatService(t *testing.T) (*ChatService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	return NewChatService(newMemChatRepo(), users), users
}

func TestChatOpenIsIdempotentPerPair(t *testing.T) {
	svc, users := newTestChatService(t)
	ctx := context.Background()

	alice := seedUser(t, users, "Alice", "alice@example.com")
	bob := seedUser(t, users, "Bob", "bob@example.com")

	c1, err := svc.Open(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// Same pair from either side lands on the same dialog.
	c2, err := svc.Open(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("Open reversed: %v", err)
	}
	if c1.ID != c2.ID {
		t.Errorf("pair produced two dialogs: %q and %q", c1.ID, c2.ID)
	}

	if _, err := svc.Open(ctx, alice.ID, alice.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("self chat: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Open(ctx, alice.ID, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestChatParticipantsOnly(t *testing.T) {
	svc, users := newTestChatService(t)
	ctx := context.Background()

	alice := seedUser(t, users, "Alice", "alice@example.com")
	bob := seedUser(t, users, "Bob", "bob@example.com")
	eve := seedUser(t, users, "Eve", "eve@example.com")

	c, err := svc.Open(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := svc.Get(ctx, eve.ID, c.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider read: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Send(ctx, eve.ID, c.ID, "let me in"); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider send: got %v, want ErrForbidden", err)
	}

	msg, err := svc.Send(ctx, alice.ID, c.ID, "hi bob")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.SenderID != alice.ID {
		t.Errorf("sender = %q", msg.SenderID)
	}

	got, err := svc.Get(ctx, bob.ID, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Text != "hi bob" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestChatSendRejectsBlankMessage(t *testing.T) {
	svc, users := newTestChatService(t)
	ctx := context.Background()

	alice := seedUser(t, users, "Alice", "alice@example.com")
	bob := seedUser(t, users, "Bob", "bob@example.com")

	c, err := svc.Open(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Send(ctx, alice.ID, c.ID, text); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Send(%q): got %v, want ErrInvalidInput", text, err)
		}
	}
}
