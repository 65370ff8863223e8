package repository

import (
	"context"

	"marketplace-backend/internal/domain/entity"
)

type ChatRepository interface {
	// GetByParticipants returns the dialog shared by exactly these two
	// users, or ErrNotFound.
	GetByParticipants(ctx context.Context, userA, userB string) (*entity.Chat, error)
	Create(ctx context.Context, participantIDs []string) (*entity.Chat, error)
	// GetByID loads the dialog with participants and messages populated.
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Chat, error)
	AddMessage(ctx context.Context, m *entity.Message) error
}
