package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// QuizManager is what the quiz endpoints need
type QuizManager interface {
	Generate(ctx context.Context, userID int64, req *dto.GenerateQuizRequest) (*models.Quiz, error)
	List(ctx context.Context, userID int64, subject string) ([]*models.QuizSummary, error)
	Get(ctx context.Context, userID, quizID int64) (*models.Quiz, error)
	Delete(ctx context.Context, userID, quizID int64) error
	Submit(ctx context.Context, userID, quizID int64, req *dto.SubmitQuizRequest) (*models.QuizResult, error)
	Results(ctx context.Context, userID, quizID int64) ([]*models.QuizResult, error)
}

// QuizController handles quiz generation and attempts
type QuizController struct {
	quizService QuizManager
	logger      zerolog.Logger
}

// NewQuizController creates a new QuizController
func NewQuizController(quizService QuizManager, logger zerolog.Logger) *QuizController {
	return &QuizController{quizService: quizService, logger: logger}
}

// Generate builds a quiz from an upload
// @Summary Generate quiz
// @Description Extracts the upload's content and asks the model for 10 multiple-choice questions. One quiz per upload.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Upload and subject"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateQuizResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 403 {object} dto.APIResponse "Not the owner of the upload"
// @Failure 404 {object} dto.APIResponse "Upload not found"
// @Failure 409 {object} dto.APIResponse "Quiz already exists for this upload"
// @Failure 415 {object} dto.APIResponse "Upload type cannot be quizzed"
// @Failure 422 {object} dto.APIResponse "Upload content could not be read"
// @Failure 502 {object} dto.APIResponse "AI service failed or returned an invalid quiz"
// @Router /quizzes/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	var req dto.GenerateQuizRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	quiz, err := c.quizService.Generate(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewGenerateQuizResponse(quiz)})
}

// List returns the caller's quizzes
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Param subject query string false "Only quizzes for this subject"
// @Success 200 {object} dto.APIResponse{data=[]models.QuizSummary}
// @Router /quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	quizzes, err := c.quizService.List(ctx.Request.Context(), userID, ctx.Query("subject"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if quizzes == nil {
		quizzes = []*models.QuizSummary{}
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: quizzes})
}

// Get returns one quiz with its questions
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.APIResponse{data=models.Quiz}
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Quiz not found"
// @Router /quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	quiz, err := c.quizService.Get(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: quiz})
}

// Delete removes a quiz and its results
// @Summary Delete quiz
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeletedResponse}
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Quiz not found"
// @Router /quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	if err := c.quizService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.DeletedResponse{Message: "Quiz deleted successfully", ID: id}})
}

// Submit grades an attempt
// @Summary Submit quiz answers
// @Description Answers are matched to questions by position. Missing or null selections count as unanswered.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitQuizResponse}
// @Failure 400 {object} dto.APIResponse "More answers than questions"
// @Failure 404 {object} dto.APIResponse "Quiz not found"
// @Router /quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.quizService.Submit(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.SubmitQuizResponse{Message: "Quiz submitted successfully", Result: result},
	})
}

// Results lists earlier attempts
// @Summary Quiz results
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.APIResponse{data=[]models.QuizResult}
// @Failure 404 {object} dto.APIResponse "Quiz not found"
// @Router /quizzes/{id}/results [get]
func (c *QuizController) Results(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	results, err := c.quizService.Results(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: results})
}
