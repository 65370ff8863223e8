package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) GetByParticipants(ctx context.Context, userA, userB string) (*entity.Chat, error) {
	c := &entity.Chat{}
	err := r.pool.QueryRow(ctx, `
		SELECT c.id, c.created_at, c.updated_at
		FROM chats c
		JOIN chat_participants pa ON pa.chat_id = c.id AND pa.user_id = $1
		JOIN chat_participants pb ON pb.chat_id = c.id AND pb.user_id = $2
	`, userA, userB).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadParticipants(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ChatRepository) Create(ctx context.Context, participantIDs []string) (*entity.Chat, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	c := &entity.Chat{}
	if err := tx.QueryRow(ctx, `INSERT INTO chats DEFAULT VALUES RETURNING id, created_at, updated_at`).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	for _, uid := range participantIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO chat_participants (chat_id, user_id) VALUES ($1, $2)`, c.ID, uid); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	if err := r.loadParticipants(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	c := &entity.Chat{}
	err := r.pool.QueryRow(ctx, `SELECT id, created_at, updated_at FROM chats WHERE id = $1`, id).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadParticipants(ctx, c); err != nil {
		return nil, err
	}
	if err := r.loadMessages(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ChatRepository) ListByUser(ctx context.Context, userID string) ([]entity.Chat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.created_at, c.updated_at
		FROM chats c
		JOIN chat_participants cp ON cp.chat_id = c.id
		WHERE cp.user_id = $1
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Chat
	for rows.Next() {
		var c entity.Chat
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadParticipants(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ChatRepository) AddMessage(ctx context.Context, m *entity.Message) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (chat_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.ChatID, m.SenderID, m.Text)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `UPDATE chats SET updated_at = now() WHERE id = $1`, m.ChatID)
	return err
}

func (r *ChatRepository) loadParticipants(ctx context.Context, c *entity.Chat) error {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.avatar_url
		FROM chat_participants cp
		JOIN users u ON u.id = cp.user_id
		WHERE cp.chat_id = $1
	`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	c.Participants = c.Participants[:0]
	for rows.Next() {
		var p entity.Redacted
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL); err != nil {
			return err
		}
		c.Participants = append(c.Participants, p)
	}
	return rows.Err()
}

func (r *ChatRepository) loadMessages(ctx context.Context, c *entity.Chat) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, chat_id, sender_id, text, created_at
		FROM messages WHERE chat_id = $1 ORDER BY created_at
	`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return err
		}
		c.Messages = append(c.Messages, m)
	}
	return rows.Err()
}

var _ repository.ChatRepository = (*ChatRepository)(nil)
