package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appAuth "github.com/yigit/studyhub/internal/app/auth"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/validation"
)

// StudySessionService manages logged study time
type StudySessionService struct {
	sessionRepo StudySessionRepository
	logger      zerolog.Logger
}

// NewStudySessionService creates a new StudySessionService
func NewStudySessionService(sessionRepo StudySessionRepository, logger zerolog.Logger) *StudySessionService {
	return &StudySessionService{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func validateSessionRequest(req *dto.SessionRequest) (string, error) {
	subject := strings.TrimSpace(req.Subject)
	if !validation.ValidSubject(subject) || req.StartTime.IsZero() || req.EndTime.IsZero() {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed, "Please fill in all fields")
	}
	if !req.EndTime.After(req.StartTime) {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed, "End time must be after start time")
	}
	return subject, nil
}

// List returns all of the user's sessions, latest start first
func (s *StudySessionService) List(ctx context.Context, userID int64) ([]*models.StudySession, error) {
	return s.sessionRepo.ListByUser(ctx, userID, 0)
}

// Create logs a new session
func (s *StudySessionService) Create(ctx context.Context, userID int64, req *dto.SessionRequest) (*models.StudySession, error) {
	subject, err := validateSessionRequest(req)
	if err != nil {
		return nil, err
	}

	session := &models.StudySession{
		UserID:    userID,
		Subject:   subject,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("sessionID", session.ID).Int("minutes", session.DurationMinutes()).Msg("Study session logged")
	return session, nil
}

// Update replaces subject and times of an owned session
func (s *StudySessionService) Update(ctx context.Context, userID, sessionID int64, req *dto.SessionRequest) (*models.StudySession, error) {
	session, err := s.owned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	subject, err := validateSessionRequest(req)
	if err != nil {
		return nil, err
	}

	session.Subject = subject
	session.StartTime = req.StartTime
	session.EndTime = req.EndTime
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes an owned session
func (s *StudySessionService) Delete(ctx context.Context, userID, sessionID int64) error {
	session, err := s.owned(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, session.ID)
}

func (s *StudySessionService) owned(ctx context.Context, userID, sessionID int64) (*models.StudySession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := appAuth.EnsureOwner("session", session.ID, session.UserID, userID); err != nil {
		return nil, err
	}
	return session, nil
}
