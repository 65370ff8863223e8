package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"marketplace-backend/config"
	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/pkg/helpers"
	"marketplace-backend/pkg/mailer"
)

// memUserRepo mimics the account store, including the conditional
// consume-token updates.
type memUserRepo struct {
	users  map[string]*entity.User // by id
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	u.ID = fmt.Sprintf("user-%d", m.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) ListOthers(_ context.Context, excludeID string) ([]entity.User, error) {
	var out []entity.User
	for _, u := range m.users {
		if u.ID != excludeID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUserRepo) SetVerifyChallenge(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.VerifyTokenHash = &tokenHash
	u.VerifyTokenExpiry = &expiresAt
	return nil
}

func (m *memUserRepo) SetResetChallenge(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetTokenHash = &tokenHash
	u.ResetTokenExpiry = &expiresAt
	return nil
}

func (m *memUserRepo) ConsumeVerifyToken(_ context.Context, tokenHash string) (*entity.User, error) {
	for _, u := range m.users {
		if u.VerifyTokenHash != nil && *u.VerifyTokenHash == tokenHash &&
			u.VerifyTokenExpiry != nil && u.VerifyTokenExpiry.After(time.Now()) {
			u.EmailVerified = true
			u.VerifyTokenHash = nil
			u.VerifyTokenExpiry = nil
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) ConsumeResetToken(_ context.Context, tokenHash, newPasswordHash string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(time.Now()) {
			u.PasswordHash = newPasswordHash
			u.ResetTokenHash = nil
			u.ResetTokenExpiry = nil
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// capturePublisher records enqueued email jobs.
type capturePublisher struct {
	jobs []mailer.EmailJob
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	if job, ok := body.(mailer.EmailJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	return &config.Config{
		SessionTTL:       24 * time.Hour,
		VerifyTokenTTL:   24 * time.Hour,
		ResetTokenTTL:    time.Hour,
		VerifyEmailURL:   "http://localhost:3000/verify-email",
		ResetPasswordURL: "http://localhost:3000/reset-password",
		MailSendEnabled:  true,
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *memUserRepo, *capturePublisher) {
	t.Helper()
	jwt, err := helpers.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	repo := newMemUserRepo()
	pub := &capturePublisher{}
	svc := NewAuthService(repo, jwt, pub, nil, quietLogger(), testConfig())
	return svc, repo, pub
}

// tokenFromLink pulls the raw token out of the link embedded in an email job.
func tokenFromLink(t *testing.T, job mailer.EmailJob) string {
	t.Helper()
	link, ok := job.Data["Link"].(string)
	if !ok || link == "" {
		t.Fatalf("job %q has no link: %+v", job.Template, job.Data)
	}
	i := strings.LastIndex(link, "/")
	return link[i+1:]
}

func TestRegister(t *testing.T) {
	svc, repo, pub := newTestAuthService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.Token == "" {
		t.Error("no session token issued")
	}
	if sess.User.EmailVerified {
		t.Error("fresh account is already verified")
	}

	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if stored.PasswordHash == "password123" {
		t.Error("password stored in plaintext")
	}
	if !helpers.CheckPassword(stored.PasswordHash, "password123") {
		t.Error("stored hash does not match the password")
	}
	if stored.VerifyTokenHash == nil || stored.VerifyTokenExpiry == nil {
		t.Fatal("no verification challenge stored")
	}

	if len(pub.jobs) != 1 || pub.jobs[0].Template != mailer.TemplateVerifyEmail {
		t.Fatalf("jobs = %+v, want one verify email", pub.jobs)
	}
	raw := tokenFromLink(t, pub.jobs[0])
	if raw == *stored.VerifyTokenHash {
		t.Error("plaintext token stored instead of its digest")
	}
	if helpers.HashToken(raw) != *stored.VerifyTokenHash {
		t.Error("stored digest does not match the mailed token")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "short"}); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("short password: got %v, want ErrPasswordTooShort", err)
	}

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "password123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "dup@example.com", Password: "password123"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: got %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	sess, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token == "" {
		t.Error("no session token")
	}

	// The session token decodes back to the account it was issued for.
	claims, err := svc.JWT.Parse(sess.Token)
	if err != nil {
		t.Fatalf("Parse issued token: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("token email claim = %q, want alice@example.com", claims.Email)
	}
	if claims.UserID != sess.User.ID {
		t.Errorf("token uid claim = %q, want %q", claims.UserID, sess.User.ID)
	}

	// An unverified account can still log in.
	if sess.User.EmailVerified {
		t.Error("account unexpectedly verified")
	}

	// Unknown email and wrong password collapse to the same error.
	_, errUnknown := svc.Login(ctx, "nobody@example.com", "password123")
	_, errWrong := svc.Login(ctx, "alice@example.com", "wrong-password")
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Error("credential failures are distinguishable")
	}
}

func TestVerifyEmailFlow(t *testing.T) {
	svc, repo, pub := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	raw := tokenFromLink(t, pub.jobs[0])

	user, err := svc.VerifyEmail(ctx, raw)
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !user.EmailVerified {
		t.Error("account not marked verified")
	}

	stored, _ := repo.GetByEmail(ctx, "alice@example.com")
	if stored.VerifyTokenHash != nil || stored.VerifyTokenExpiry != nil {
		t.Error("challenge not cleared after consumption")
	}

	// Single use: the same token fails the second time.
	if _, err := svc.VerifyEmail(ctx, raw); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Errorf("replayed token: got %v, want ErrInvalidOrExpiredToken", err)
	}
	// Garbage tokens fail the same way.
	if _, err := svc.VerifyEmail(ctx, "no-such-token"); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Errorf("unknown token: got %v, want ErrInvalidOrExpiredToken", err)
	}
}

func TestVerifyEmailExpired(t *testing.T) {
	svc, repo, pub := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	raw := tokenFromLink(t, pub.jobs[0])

	stored, _ := repo.GetByEmail(ctx, "alice@example.com")
	past := time.Now().Add(-time.Minute)
	_ = repo.SetVerifyChallenge(ctx, stored.ID, *stored.VerifyTokenHash, past)

	if _, err := svc.VerifyEmail(ctx, raw); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Errorf("expired token: got %v, want ErrInvalidOrExpiredToken", err)
	}
}

func TestForgotPassword(t *testing.T) {
	svc, repo, pub := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	pub.jobs = nil

	// Registered address: challenge stored and email queued.
	if err := svc.ForgotPassword(ctx, "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	stored, _ := repo.GetByEmail(ctx, "alice@example.com")
	if stored.ResetTokenHash == nil || stored.ResetTokenExpiry == nil {
		t.Fatal("no reset challenge stored")
	}
	if len(pub.jobs) != 1 || pub.jobs[0].Template != mailer.TemplateResetPassword {
		t.Fatalf("jobs = %+v, want one reset email", pub.jobs)
	}

	// Unknown address: identical outcome for the caller, no email.
	pub.jobs = nil
	if err := svc.ForgotPassword(ctx, "nobody@example.com"); err != nil {
		t.Errorf("unknown address must not error, got %v", err)
	}
	if len(pub.jobs) != 0 {
		t.Errorf("email queued for unknown address: %+v", pub.jobs)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _, pub := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "old-password1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	pub.jobs = nil
	if err := svc.ForgotPassword(ctx, "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	raw := tokenFromLink(t, pub.jobs[0])

	// Too-short replacement is rejected before touching the challenge.
	if err := svc.ResetPassword(ctx, raw, "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password: got %v, want ErrPasswordTooShort", err)
	}

	if err := svc.ResetPassword(ctx, raw, "new-password1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	// Old credentials dead, new ones live.
	if _, err := svc.Login(ctx, "alice@example.com", "old-password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still works: %v", err)
	}
	if _, err := svc.Login(ctx, "alice@example.com", "new-password1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	// Single use.
	if err := svc.ResetPassword(ctx, raw, "another-password1"); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Errorf("replayed token: got %v, want ErrInvalidOrExpiredToken", err)
	}
}

func TestResendVerification(t *testing.T) {
	svc, _, pub := newTestAuthService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	first := tokenFromLink(t, pub.jobs[0])

	if err := svc.ResendVerification(ctx, sess.User.ID); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}
	if len(pub.jobs) != 2 || pub.jobs[1].Template != mailer.TemplateVerifyEmail {
		t.Fatalf("jobs = %+v, want a second verify email", pub.jobs)
	}
	second := tokenFromLink(t, pub.jobs[1])
	if second == first {
		t.Fatal("resend reused the previous token")
	}

	// The replaced challenge kills the earlier token.
	if _, err := svc.VerifyEmail(ctx, first); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Errorf("stale token: got %v, want ErrInvalidOrExpiredToken", err)
	}
	u, err := svc.VerifyEmail(ctx, second)
	if err != nil {
		t.Fatalf("VerifyEmail with fresh token: %v", err)
	}
	if !u.EmailVerified {
		t.Error("account not verified after consuming fresh token")
	}

	if err := svc.ResendVerification(ctx, sess.User.ID); !errors.Is(err, ErrAlreadyVerified) {
		t.Errorf("resend after verification: got %v, want ErrAlreadyVerified", err)
	}
	if err := svc.ResendVerification(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown account: got %v, want ErrNotFound", err)
	}
}

func TestPublishFailureDoesNotFailRegistration(t *testing.T) {
	svc, _, pub := newTestAuthService(t)
	pub.err = errors.New("broker down")

	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register must succeed despite publish failure, got %v", err)
	}
}

// When the broker never came up, the wiring may hand the service a typed-nil
// concrete publisher behind the Publisher interface. Neither registration
// nor a reset request may panic or fail because of it.
func TestNilConcretePublisherDoesNotFailAuthFlows(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	svc.Pub = (*helpers.RabbitPublisher)(nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register with nil concrete publisher: %v", err)
	}
	if err := svc.ForgotPassword(ctx, "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword with nil concrete publisher: %v", err)
	}
}
