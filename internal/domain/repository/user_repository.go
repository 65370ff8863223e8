package repository

import (
	"context"
	"errors"
	"time"

	"marketplace-backend/internal/domain/entity"
)

// ErrNotFound is returned by all repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by UserRepository.Create when the email is
// already registered (unique index violation).
var ErrDuplicateEmail = errors.New("duplicate email")

// UserRepository is the account store. Token lookups are filtered to
// non-expired challenges inside the store, and the Consume* methods clear
// the challenge in the same conditional update that matches it, so two
// racing callers cannot both consume one token.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	// ListOthers returns all users except the given one (chat contact list).
	ListOthers(ctx context.Context, excludeID string) ([]entity.User, error)

	// SetVerifyChallenge overwrites the pending verification challenge.
	SetVerifyChallenge(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// SetResetChallenge overwrites the pending password-reset challenge.
	SetResetChallenge(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ConsumeVerifyToken marks the matching account verified and clears the
	// challenge, all in one conditional update. ErrNotFound covers unknown,
	// expired and already-consumed tokens alike.
	ConsumeVerifyToken(ctx context.Context, tokenHash string) (*entity.User, error)
	// ConsumeResetToken swaps in the new password hash and clears the reset
	// challenge under the same predicate.
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) (*entity.User, error)
}
