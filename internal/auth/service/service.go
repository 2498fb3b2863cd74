package service

import (
	"context"
	"time"

	"bootcamp_directory_backend/internal/auth/password"
	"bootcamp_directory_backend/internal/auth/repository"
	"bootcamp_directory_backend/internal/auth/token"
	"bootcamp_directory_backend/internal/auth/transport"
	"bootcamp_directory_backend/internal/email"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const resetTokenBytes = 20

// Service provides registration, login and credential management.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	mail email.Sender
	log  *logger.Logger
}

func New(repo repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, mail email.Sender, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, mail: mail, log: log}
}

// Register creates an account and signs the user in. The role comes
// from the request but only user and publisher are accepted there.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (string, transport.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = "user"
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return "", transport.UserResponse{}, err
	}

	user, err := s.repo.Create(ctx, repository.CreateParams{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return "", transport.UserResponse{}, err
	}

	s.log.AuthEvent("register", user.Email, true, "")
	s.bus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	})

	signed, err := s.signJWT(user)
	if err != nil {
		return "", transport.UserResponse{}, err
	}
	return signed, toResponse(user), nil
}

// Login checks credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, transport.UserResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", transport.UserResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return "", transport.UserResponse{}, apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("login", email, true, "")
	signed, err := s.signJWT(user)
	if err != nil {
		return "", transport.UserResponse{}, err
	}
	return signed, toResponse(user), nil
}

// GetMe returns the authenticated user's profile.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toResponse(user), nil
}

// UpdateDetails changes the caller's name and/or email.
func (s *Service) UpdateDetails(ctx context.Context, userID uuid.UUID, req transport.UpdateDetailsRequest) (transport.UserResponse, error) {
	user, err := s.repo.UpdateDetails(ctx, userID, repository.UpdateDetailsParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toResponse(user), nil
}

// UpdatePassword verifies the current password, stores the new one and
// issues a fresh session token.
func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := password.Compare(user.PasswordHash, currentPassword); err != nil {
		return "", apperr.Unauthorized("password is incorrect")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return "", err
	}

	s.log.AuthEvent("password_update", user.Email, true, "")
	return s.signJWT(user)
}

// ForgotPassword issues a reset token and emails its URL. The response
// does not reveal whether the email exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	resetToken, err := token.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		return err
	}

	expire := time.Now().Add(s.cfg.GetResetTokenTTL())
	if err := s.repo.SetResetToken(ctx, user.ID, token.HashSHA256(resetToken), expire); err != nil {
		return err
	}

	resetURL := s.cfg.GetAppBaseURL() + "/api/v1/auth/resetpassword/" + resetToken
	if err := s.mail.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// Do not leave a live token the user never received.
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.log.Error("clear reset token after send failure", "error", clearErr)
		}
		return apperr.Internal("email could not be sent")
	}

	s.bus.Publish(ctx, events.PasswordResetRequested{
		BaseEvent:  events.NewBaseEvent(),
		UserID:     user.ID,
		Email:      user.Email,
		ResetToken: token.HashSHA256(resetToken),
		ResetURL:   resetURL,
	})
	return nil
}

// ResetPassword consumes an emailed reset token, sets the new password
// and signs the user in.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, transport.UserResponse, error) {
	user, err := s.repo.GetByResetToken(ctx, token.HashSHA256(rawToken), time.Now())
	if err != nil {
		return "", transport.UserResponse{}, err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return "", transport.UserResponse{}, err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", transport.UserResponse{}, err
	}
	if err := s.repo.ClearResetToken(ctx, user.ID); err != nil {
		return "", transport.UserResponse{}, err
	}

	s.log.AuthEvent("password_reset", user.Email, true, "")
	signed, err := s.signJWT(user)
	if err != nil {
		return "", transport.UserResponse{}, err
	}
	return signed, toResponse(user), nil
}

// GetUser exposes a user to other bounded contexts via the adapter.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) signJWT(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  now.Add(s.cfg.GetJWTExpire()).Unix(),
		"iat":  now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTSecret()))
}

func toResponse(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		CourseCreatedCount: u.CourseCreatedCount,
		CreatedAt:          u.CreatedAt,
	}
}
