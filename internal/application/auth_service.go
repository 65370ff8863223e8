package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"marketplace-backend/config"
	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/pkg/helpers"
	"marketplace-backend/pkg/mailer"
)

// Publisher is the queue the auth flows hand email jobs to. The concrete
// implementation is helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService owns the credential lifecycle: registration, login, email
// verification and password reset. Every challenge token is stored as a
// SHA-256 digest with an expiry, consumed through a single conditional
// update in the account store, and mailed to the user out of band.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Pub    Publisher
	Redis  *redis.Client
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, pub Publisher, rdb *redis.Client, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Pub: pub, Redis: rdb, Logger: logger, Cfg: cfg}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session bundles a freshly issued session token with the account view.
type Session struct {
	User        entity.Redacted
	Token       string
	TokenExpiry time.Time
}

// Register creates the account with a hashed password and a pending
// verification challenge, issues a session token for immediate login, and
// queues the verification email carrying the plaintext token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if len(in.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	rawToken, err := helpers.GenerateToken()
	if err != nil {
		return nil, err
	}
	digest := helpers.HashToken(rawToken)
	expiry := time.Now().Add(s.Cfg.VerifyTokenTTL)

	u := &entity.User{
		Name:              in.Name,
		Email:             in.Email,
		PasswordHash:      hash,
		Role:              entity.RoleUser,
		EmailVerified:     false,
		VerifyTokenHash:   &digest,
		VerifyTokenExpiry: &expiry,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	sess, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateVerifyEmail,
		Data: map[string]any{
			"Name":      u.Name,
			"Link":      s.Cfg.VerifyEmailURL + "/" + rawToken,
			"ExpiresIn": durationText(s.Cfg.VerifyTokenTTL),
		},
	})

	return sess, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password produce the same error. Verification state does not gate login;
// it is advisory and exposed in the profile payload.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, u)
}

// VerifyEmail consumes a verification token. The lookup predicate is "hash
// matches AND not expired" in one conditional update, so an unknown,
// expired or already-consumed token all fail identically, and a second
// caller racing on the same token loses at the store.
func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string) (*entity.Redacted, error) {
	u, err := s.Repo.ConsumeVerifyToken(ctx, helpers.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, err
	}
	view := u.Redact()
	return &view, nil
}

// ResendVerification replaces the pending verification challenge for a
// signed-in account and mails the fresh token. Any earlier verification
// token stops working once the new challenge is stored.
func (s *AuthService) ResendVerification(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}

	rawToken, err := helpers.GenerateToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.Cfg.VerifyTokenTTL)
	if err := s.Repo.SetVerifyChallenge(ctx, u.ID, helpers.HashToken(rawToken), expiry); err != nil {
		return err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateVerifyEmail,
		Data: map[string]any{
			"Name":      u.Name,
			"Link":      s.Cfg.VerifyEmailURL + "/" + rawToken,
			"ExpiresIn": durationText(s.Cfg.VerifyTokenTTL),
		},
	})
	return nil
}

// ForgotPassword starts a reset challenge. The outcome visible to the
// caller is identical whether or not the email is registered; only the
// registered path writes a challenge and queues an email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	rawToken, err := helpers.GenerateToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.Cfg.ResetTokenTTL)
	if err := s.Repo.SetResetChallenge(ctx, u.ID, helpers.HashToken(rawToken), expiry); err != nil {
		return err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateResetPassword,
		Data: map[string]any{
			"Name":      u.Name,
			"Link":      s.Cfg.ResetPasswordURL + "/" + rawToken,
			"ExpiresIn": durationText(s.Cfg.ResetTokenTTL),
		},
	})
	return nil
}

// ResetPassword completes a reset challenge: the new password is hashed and
// swapped in, and the challenge cleared, in the same conditional update.
// It does not log the user in.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.Repo.ConsumeResetToken(ctx, helpers.HashToken(rawToken), hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}
	return nil
}

// Logout drops the server-side session mirror. The JWT itself stays valid
// until expiry; there is no revocation list.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.DropSession(ctx, s.Redis, userID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("drop session failed")
	}
}

func (s *AuthService) issueSession(ctx context.Context, u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue session token failed")
		}
		return nil, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"role":       u.Role,
			"avatar_url": u.AvatarURL,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		if err := helpers.StoreSession(ctx, s.Redis, u.ID, fields, s.Cfg.SessionTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("store session failed")
		}
	}

	return &Session{User: u.Redact(), Token: token, TokenExpiry: exp}, nil
}

// enqueueEmail dispatches an email job after the primary state change has
// committed. Failures are logged and swallowed: notification delivery must
// never unwind a credential state transition.
func (s *AuthService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil || !s.Cfg.MailSendEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"template": job.Template,
			"to":       job.To,
		}).Warn("email enqueue failed")
	}
}

func durationText(d time.Duration) string {
	if h := int(d.Hours()); h >= 1 {
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}
