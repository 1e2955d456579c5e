package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// RecommendationProvider is what the recommendation endpoints need
type RecommendationProvider interface {
	Generate(ctx context.Context, userID int64) (*dto.RecommendationResponse, error)
	Subjects(ctx context.Context, userID int64) ([]string, error)
}

// RecommendationController serves AI study recommendations
type RecommendationController struct {
	recommendationService RecommendationProvider
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(recommendationService RecommendationProvider) *RecommendationController {
	return &RecommendationController{recommendationService: recommendationService}
}

// Generate godoc
// @Summary Generate recommendations
// @Description Summarises recent sessions, quiz results and goals and asks the model for advice. Users without history get a fixed starter set.
// @Tags recommendations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RecommendationResponse}
// @Failure 502 {object} dto.APIResponse "AI service failed"
// @Router /recommendations/generate [get]
func (c *RecommendationController) Generate(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.recommendationService.Generate(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Subjects godoc
// @Summary Studied subjects
// @Tags recommendations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SubjectsResponse}
// @Router /recommendations/subjects [get]
func (c *RecommendationController) Subjects(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	subjects, err := c.recommendationService.Subjects(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SubjectsResponse{Subjects: subjects}})
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.HealthResponse{Status: "ok"}})
}
