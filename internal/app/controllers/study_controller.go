package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// StudySessionManager is what the session endpoints need
type StudySessionManager interface {
	List(ctx context.Context, userID int64) ([]*models.StudySession, error)
	Create(ctx context.Context, userID int64, req *dto.SessionRequest) (*models.StudySession, error)
	Update(ctx context.Context, userID, sessionID int64, req *dto.SessionRequest) (*models.StudySession, error)
	Delete(ctx context.Context, userID, sessionID int64) error
}

// GoalManager is what the goal endpoints need
type GoalManager interface {
	List(ctx context.Context, userID int64) ([]*dto.GoalResponse, error)
	Create(ctx context.Context, userID int64, req *dto.CreateGoalRequest) (*dto.GoalResponse, error)
	Update(ctx context.Context, userID, goalID int64, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error)
	Delete(ctx context.Context, userID, goalID int64) error
}

// StudyController handles study sessions and goals
type StudyController struct {
	sessionService StudySessionManager
	goalService    GoalManager
}

// NewStudyController creates a new StudyController
func NewStudyController(sessionService StudySessionManager, goalService GoalManager) *StudyController {
	return &StudyController{sessionService: sessionService, goalService: goalService}
}

// ListSessions godoc
// @Summary List study sessions
// @Description All of the caller's sessions, latest start first, with duration in minutes
// @Tags sessions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SessionResponse}
// @Router /sessions [get]
func (c *StudyController) ListSessions(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	sessions, err := c.sessionService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]*dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, dto.NewSessionResponse(s))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// CreateSession godoc
// @Summary Log a study session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Session"
// @Success 201 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 400 {object} dto.APIResponse "Missing fields or end time not after start time"
// @Router /sessions [post]
func (c *StudyController) CreateSession(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	var req dto.SessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewSessionResponse(session)})
}

// UpdateSession godoc
// @Summary Update a study session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.SessionRequest true "Session"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 400 {object} dto.APIResponse "Invalid times"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Router /sessions/{id} [put]
func (c *StudyController) UpdateSession(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	var req dto.SessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.Update(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewSessionResponse(session)})
}

// DeleteSession godoc
// @Summary Delete a study session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeletedResponse}
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Router /sessions/{id} [delete]
func (c *StudyController) DeleteSession(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	if err := c.sessionService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.DeletedResponse{Message: "Session deleted successfully", ID: id}})
}

// ListGoals godoc
// @Summary List goals with progress
// @Tags goals
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.GoalResponse}
// @Router /goals [get]
func (c *StudyController) ListGoals(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	goals, err := c.goalService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: goals})
}

// CreateGoal godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body dto.CreateGoalRequest true "Goal"
// @Success 201 {object} dto.APIResponse{data=dto.GoalResponse}
// @Failure 400 {object} dto.APIResponse "Invalid target hours or period"
// @Router /goals [post]
func (c *StudyController) CreateGoal(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	goal, err := c.goalService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: goal})
}

// UpdateGoal godoc
// @Summary Update a goal
// @Description Only the fields present in the body are changed
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body dto.UpdateGoalRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.GoalResponse}
// @Failure 400 {object} dto.APIResponse "Invalid target hours or period"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Goal not found"
// @Router /goals/{id} [put]
func (c *StudyController) UpdateGoal(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	goal, err := c.goalService.Update(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: goal})
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeletedResponse}
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Goal not found"
// @Router /goals/{id} [delete]
func (c *StudyController) DeleteGoal(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	if err := c.goalService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.DeletedResponse{Message: "Goal deleted successfully", ID: id}})
}
