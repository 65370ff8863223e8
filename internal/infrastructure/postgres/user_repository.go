package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, role, email_verified,
		verify_token_hash, verify_token_expires_at,
		reset_token_hash, reset_token_expires_at,
		avatar_url, avatar_storage_id, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified,
		&u.VerifyTokenHash, &u.VerifyTokenExpiry,
		&u.ResetTokenHash, &u.ResetTokenExpiry,
		&u.AvatarURL, &u.AvatarStorageID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, email_verified,
			verify_token_hash, verify_token_expires_at, avatar_url, avatar_storage_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.Role, u.EmailVerified,
		u.VerifyTokenHash, u.VerifyTokenExpiry, u.AvatarURL, u.AvatarStorageID)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, avatar_url = $2, avatar_storage_id = $3, updated_at = $4
		WHERE id = $5
	`, u.Name, u.AvatarURL, u.AvatarStorageID, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListOthers(ctx context.Context, excludeID string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id <> $1 ORDER BY name`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetVerifyChallenge(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET verify_token_hash = $1, verify_token_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, tokenHash, expiresAt, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetChallenge(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = $1, reset_token_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, tokenHash, expiresAt, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ConsumeVerifyToken flips email_verified and clears the challenge in one
// statement. The WHERE clause is the full match-and-not-expired predicate,
// so of two racing consumers only one sees an affected row.
func (r *UserRepository) ConsumeVerifyToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET email_verified = TRUE,
		    verify_token_hash = NULL,
		    verify_token_expires_at = NULL,
		    updated_at = now()
		WHERE verify_token_hash = $1
		  AND verify_token_expires_at > now()
		RETURNING `+userColumns, tokenHash))
}

// ConsumeResetToken swaps the password hash and clears the reset challenge
// under the same single-statement predicate.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $2,
		    reset_token_hash = NULL,
		    reset_token_expires_at = NULL,
		    updated_at = now()
		WHERE reset_token_hash = $1
		  AND reset_token_expires_at > now()
		RETURNING `+userColumns, tokenHash, newPasswordHash))
}

var _ repository.UserRepository = (*UserRepository)(nil)
