package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bootcamp_directory_backend/internal/auth/password"
	"bootcamp_directory_backend/internal/auth/repository"
	"bootcamp_directory_backend/internal/auth/token"
	"bootcamp_directory_backend/internal/auth/transport"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeRepo struct {
	users map[uuid.UUID]repository.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]repository.User)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.User, error) {
	for _, u := range f.users {
		if u.Email == params.Email {
			return repository.User{}, apperr.Conflict("email already registered")
		}
	}
	u := repository.User{
		ID:                 uuid.New(),
		Name:               params.Name,
		Email:              params.Email,
		Role:               params.Role,
		PasswordHash:       params.PasswordHash,
		CourseCreatedLimit: 5,
		CreatedAt:          time.Now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) UpdateDetails(_ context.Context, id uuid.UUID, params repository.UpdateDetailsParams) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

func (f *fakeRepo) SetResetToken(_ context.Context, id uuid.UUID, tokenHash string, expire time.Time) error {
	u := f.users[id]
	u.ResetPasswordToken = &tokenHash
	u.ResetPasswordExpire = &expire
	f.users[id] = u
	return nil
}

func (f *fakeRepo) GetByResetToken(_ context.Context, tokenHash string, now time.Time) (repository.User, error) {
	for _, u := range f.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire.After(now) {
			return u, nil
		}
	}
	return repository.User{}, apperr.BadRequest("invalid token")
}

func (f *fakeRepo) ClearResetToken(_ context.Context, id uuid.UUID) error {
	u := f.users[id]
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
	f.users[id] = u
	return nil
}

type fakeSender struct {
	sent []string
	fail bool
}

func (f *fakeSender) SendPasswordReset(_ context.Context, toEmail, resetURL string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, resetURL)
	return nil
}

type testConfig struct{}

func (testConfig) GetJWTSecret() string            { return "test-secret" }
func (testConfig) GetJWTExpire() time.Duration     { return time.Hour }
func (testConfig) GetResetTokenTTL() time.Duration { return 10 * time.Minute }
func (testConfig) GetAppBaseURL() string           { return "http://localhost:5000" }

func newTestService(repo repository.Repository, mail *fakeSender) *Service {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	return New(repo, testConfig{}, bus, mail, log)
}

func TestRegister_DefaultsRoleAndSignsToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{})

	signed, user, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != "user" {
		t.Fatalf("role = %q, want user", user.Role)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["sub"] != user.ID.String() {
		t.Fatalf("sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["role"] != "user" {
		t.Fatalf("role claim = %v", claims["role"])
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{})

	req := transport.RegisterRequest{Name: "John", Email: "john@example.com", Password: "123456"}
	if _, _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{})

	_, _, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name: "John", Email: "john@example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "john@example.com", "654321"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "123456"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestForgotPassword_UnknownEmailSucceeds(t *testing.T) {
	repo := newFakeRepo()
	mail := &fakeSender{}
	svc := newTestService(repo, mail)

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("expected nil for unknown email, got %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("no mail should be sent for unknown email")
	}
}

func TestForgotPassword_StoresHashedTokenAndEmailsRawToken(t *testing.T) {
	repo := newFakeRepo()
	mail := &fakeSender{}
	svc := newTestService(repo, mail)

	_, user, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name: "John", Email: "john@example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "john@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mail.sent))
	}

	stored := repo.users[user.ID]
	if stored.ResetPasswordToken == nil {
		t.Fatal("reset token not stored")
	}

	// The emailed URL carries the raw token; the store holds its hash.
	rawToken := mail.sent[0][strings.LastIndex(mail.sent[0], "/")+1:]
	if token.HashSHA256(rawToken) != *stored.ResetPasswordToken {
		t.Fatal("stored token is not the hash of the emailed token")
	}
}

func TestForgotPassword_ClearsTokenWhenEmailFails(t *testing.T) {
	repo := newFakeRepo()
	mail := &fakeSender{fail: true}
	svc := newTestService(repo, mail)

	_, user, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name: "John", Email: "john@example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.ForgotPassword(context.Background(), "john@example.com")
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if repo.users[user.ID].ResetPasswordToken != nil {
		t.Fatal("reset token should be cleared after send failure")
	}
}

func TestResetPassword_ConsumesToken(t *testing.T) {
	repo := newFakeRepo()
	mail := &fakeSender{}
	svc := newTestService(repo, mail)

	_, user, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name: "John", Email: "john@example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), "john@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	rawToken := mail.sent[0][strings.LastIndex(mail.sent[0], "/")+1:]
	signed, _, err := svc.ResetPassword(context.Background(), rawToken, "newpassword")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if signed == "" {
		t.Fatal("expected a session token after reset")
	}

	stored := repo.users[user.ID]
	if stored.ResetPasswordToken != nil {
		t.Fatal("token should be cleared after use")
	}
	if err := password.Compare(stored.PasswordHash, "newpassword"); err != nil {
		t.Fatal("new password not stored")
	}

	// Token is single-use.
	if _, _, err := svc.ResetPassword(context.Background(), rawToken, "another"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request on reuse, got %v", err)
	}
}

func TestUpdatePassword_RequiresCurrentPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{})

	_, user, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name: "John", Email: "john@example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "newpassword"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.UpdatePassword(context.Background(), user.ID, "123456", "newpassword"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
}
