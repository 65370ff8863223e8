package entity

import "time"

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the durable account record. PasswordHash is a bcrypt digest and
// never leaves the persistence layer in API responses. The two token
// hash/expiry pairs hold at most one pending challenge each; nil means no
// active challenge of that kind.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          string
	EmailVerified bool

	VerifyTokenHash   *string
	VerifyTokenExpiry *time.Time
	ResetTokenHash    *string
	ResetTokenExpiry  *time.Time

	AvatarURL       string
	AvatarStorageID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Redacted is the caller-visible account view: no password hash, no token
// material.
type Redacted struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Redact strips credential material for API responses.
func (u *User) Redact() Redacted {
	return Redacted{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		AvatarURL:     u.AvatarURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
