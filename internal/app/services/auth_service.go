package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/auth"
	"github.com/yigit/studyhub/internal/pkg/session"
	"github.com/yigit/studyhub/internal/pkg/validation"
)

// AuthService handles accounts and login sessions
type AuthService struct {
	userRepo   UserRepository
	sessions   session.Store
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserRepository, sessions session.Store, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Signup creates an account and logs it in
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, *auth.SessionToken, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validation.ValidUsername(username) {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"Username must be 3-50 characters of letters, digits, dot, dash or underscore")
	}
	if !validation.ValidPassword(req.Password) {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Password must be at least 6 characters")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, nil, apperrors.ErrUsernameAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	// The unique constraints still decide a concurrent signup with the same email or username
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, token, nil
}

// Login verifies the password and starts a session
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *auth.SessionToken, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login with wrong password")
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

func (s *AuthService) startSession(ctx context.Context, user *models.User) (*auth.SessionToken, error) {
	token, err := s.jwtService.IssueSessionToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, token.SessionID, user.ID, s.jwtService.TTL()); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to store session")
		return nil, err
	}
	return token, nil
}

// Authenticate resolves a session token to its user id. The token must be
// valid and its session must not have been revoked.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (int64, string, error) {
	claims, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return 0, "", err
	}

	userID, err := s.sessions.UserID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return 0, "", apperrors.ErrTokenRevoked
		}
		return 0, "", err
	}
	if userID != claims.UserID {
		return 0, "", apperrors.ErrTokenInvalid
	}

	return userID, claims.ID, nil
}

// Logout revokes a session; an unknown session is already logged out
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// CurrentUser loads the account behind an authenticated request
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// SessionTTL is how long a new session lasts
func (s *AuthService) SessionTTL() int {
	return int(s.jwtService.TTL().Seconds())
}
