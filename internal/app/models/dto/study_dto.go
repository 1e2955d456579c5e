package dto

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
)

// SessionRequest is the body of session create and update
type SessionRequest struct {
	Subject   string    `json:"subject" binding:"required" example:"Biology"`
	StartTime time.Time `json:"startTime" binding:"required" example:"2025-05-01T09:00:00Z"`
	EndTime   time.Time `json:"endTime" binding:"required" example:"2025-05-01T10:30:00Z"`
}

// SessionResponse is a study session with its derived duration and date
type SessionResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Subject   string    `json:"subject"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration" example:"90"`
	Date      string    `json:"date" example:"2025-05-01"`
}

// NewSessionResponse derives duration (minutes) and date from a session
func NewSessionResponse(s *models.StudySession) *SessionResponse {
	return &SessionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Subject:   s.Subject,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Duration:  s.DurationMinutes(),
		Date:      s.Date(),
	}
}

// CreateGoalRequest is the body of goal create
type CreateGoalRequest struct {
	Subject     string            `json:"subject" binding:"required" example:"Biology"`
	TargetHours float64           `json:"targetHours" binding:"required,gt=0" example:"10"`
	Period      models.GoalPeriod `json:"period" binding:"required,oneof=weekly monthly" example:"weekly"`
}

// UpdateGoalRequest is a partial goal update; absent fields keep their value
type UpdateGoalRequest struct {
	Subject     *string            `json:"subject,omitempty" example:"Chemistry"`
	TargetHours *float64           `json:"targetHours,omitempty" binding:"omitempty,gt=0" example:"12"`
	Period      *models.GoalPeriod `json:"period,omitempty" binding:"omitempty,oneof=weekly monthly" example:"monthly"`
}

// GoalProgress is computed on read from sessions in the goal's window
type GoalProgress struct {
	CurrentHours float64 `json:"currentHours" example:"4.5"`
	Progress     float64 `json:"progress" example:"45"`
	Remaining    float64 `json:"remaining" example:"5.5"`
}

// GoalResponse is a goal with its current progress
type GoalResponse struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"userId"`
	Subject     string            `json:"subject"`
	TargetHours float64           `json:"targetHours"`
	Period      models.GoalPeriod `json:"period"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Progress    GoalProgress      `json:"progress"`
}

// NewGoalResponse pairs a goal with its progress
func NewGoalResponse(g *models.Goal, progress GoalProgress) *GoalResponse {
	return &GoalResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		Subject:     g.Subject,
		TargetHours: g.TargetHours,
		Period:      g.Period,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
		Progress:    progress,
	}
}
