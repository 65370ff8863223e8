package application

import (
	"context"
	"errors"
	"strings"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

// ChatService manages two-party dialogs. At most one dialog exists per
// participant pair, and only participants may read or post to it.
type ChatService struct {
	Chats repository.ChatRepository
	Users repository.UserRepository
}

func NewChatService(chats repository.ChatRepository, users repository.UserRepository) *ChatService {
	return &ChatService{Chats: chats, Users: users}
}

// Open returns the dialog between the caller and the other user, creating
// it on first contact.
func (s *ChatService) Open(ctx context.Context, callerID, otherID string) (*entity.Chat, error) {
	if callerID == otherID {
		return nil, ErrForbidden
	}
	if _, err := s.Users.GetByID(ctx, otherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	c, err := s.Chats.GetByParticipants(ctx, callerID, otherID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.Chats.Create(ctx, []string{callerID, otherID})
}

// Get loads a dialog with its messages; only participants may read it.
func (s *ChatService) Get(ctx context.Context, callerID, chatID string) (*entity.Chat, error) {
	c, err := s.Chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !c.HasParticipant(callerID) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *ChatService) ListByUser(ctx context.Context, userID string) ([]entity.Chat, error) {
	return s.Chats.ListByUser(ctx, userID)
}

// Send posts a message into a dialog the caller participates in.
func (s *ChatService) Send(ctx context.Context, callerID, chatID, text string) (*entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.Get(ctx, callerID, chatID); err != nil {
		return nil, err
	}
	m := &entity.Message{ChatID: chatID, SenderID: callerID, Text: text}
	if err := s.Chats.AddMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
