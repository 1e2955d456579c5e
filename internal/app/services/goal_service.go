package services

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"
	appAuth "github.com/yigit/studyhub/internal/app/auth"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/helpers"
	"github.com/yigit/studyhub/internal/pkg/validation"
)

// GoalService manages study goals and computes their progress
type GoalService struct {
	goalRepo    GoalRepository
	sessionRepo StudySessionRepository
	now         Clock
	logger      zerolog.Logger
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo GoalRepository, sessionRepo StudySessionRepository, now Clock, logger zerolog.Logger) *GoalService {
	return &GoalService{
		goalRepo:    goalRepo,
		sessionRepo: sessionRepo,
		now:         now,
		logger:      logger,
	}
}

// ComputeProgress turns the minutes studied in a goal's window into progress.
// Hours are rounded to 2 places and the percentage to 1, capped at 100.
func ComputeProgress(targetHours float64, minutes int) dto.GoalProgress {
	current := float64(minutes) / 60
	progress := 0.0
	if targetHours > 0 {
		progress = math.Min(current/targetHours*100, 100)
	}
	return dto.GoalProgress{
		CurrentHours: helpers.RoundTo(current, 2),
		Progress:     helpers.RoundTo(progress, 1),
		Remaining:    helpers.RoundTo(math.Max(targetHours-current, 0), 2),
	}
}

// Progress sums the user's sessions for the goal's subject in its trailing window
func (s *GoalService) Progress(ctx context.Context, goal *models.Goal) (dto.GoalProgress, error) {
	sessions, err := s.sessionRepo.ListBySubjectSince(ctx, goal.UserID, goal.Subject, goal.WindowStart(s.now()))
	if err != nil {
		return dto.GoalProgress{}, err
	}

	minutes := 0
	for _, session := range sessions {
		minutes += session.DurationMinutes()
	}
	return ComputeProgress(goal.TargetHours, minutes), nil
}

func (s *GoalService) withProgress(ctx context.Context, goal *models.Goal) (*dto.GoalResponse, error) {
	progress, err := s.Progress(ctx, goal)
	if err != nil {
		return nil, err
	}
	return dto.NewGoalResponse(goal, progress), nil
}

// List returns the user's goals, newest first, each with its progress
func (s *GoalService) List(ctx context.Context, userID int64) ([]*dto.GoalResponse, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		resp, err := s.withProgress(ctx, goal)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Create stores a goal and returns it with its initial progress
func (s *GoalService) Create(ctx context.Context, userID int64, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	subject := strings.TrimSpace(req.Subject)
	if !validation.ValidSubject(subject) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Please fill in all fields")
	}
	if err := validateGoalValues(req.TargetHours, req.Period); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:      userID,
		Subject:     subject,
		TargetHours: req.TargetHours,
		Period:      req.Period,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("goalID", goal.ID).Str("subject", goal.Subject).Msg("Goal created")
	return s.withProgress(ctx, goal)
}

// Update applies the fields present in req and keeps the rest
func (s *GoalService) Update(ctx context.Context, userID, goalID int64, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		subject := strings.TrimSpace(*req.Subject)
		if !validation.ValidSubject(subject) {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Subject cannot be empty")
		}
		goal.Subject = subject
	}
	if req.TargetHours != nil {
		goal.TargetHours = *req.TargetHours
	}
	if req.Period != nil {
		goal.Period = *req.Period
	}
	if err := validateGoalValues(goal.TargetHours, goal.Period); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return s.withProgress(ctx, goal)
}

// Delete removes an owned goal
func (s *GoalService) Delete(ctx context.Context, userID, goalID int64) error {
	goal, err := s.owned(ctx, userID, goalID)
	if err != nil {
		return err
	}
	return s.goalRepo.Delete(ctx, goal.ID)
}

func (s *GoalService) owned(ctx context.Context, userID, goalID int64) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := appAuth.EnsureOwner("goal", goal.ID, goal.UserID, userID); err != nil {
		return nil, err
	}
	return goal, nil
}

func validateGoalValues(targetHours float64, period models.GoalPeriod) error {
	if targetHours <= 0 {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Target hours must be greater than 0")
	}
	if !period.Valid() {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Period must be 'weekly' or 'monthly'")
	}
	return nil
}
