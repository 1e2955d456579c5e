package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/controllers"
	"github.com/yigit/studyhub/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1
type Controllers struct {
	Auth           *controllers.AuthController
	Study          *controllers.StudyController
	Upload         *controllers.UploadController
	Quiz           *controllers.QuizController
	Recommendation *controllers.RecommendationController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter *middleware.IPRateLimiter,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/health", controllers.Health)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authLimiter.Middleware(), ctrl.Auth.Signup)
		auth.POST("/login", authLimiter.Middleware(), ctrl.Auth.Login)
		auth.POST("/logout", authMiddleware.RequireAuth(), ctrl.Auth.Logout)
		auth.GET("/check-session", authMiddleware.OptionalAuth(), ctrl.Auth.CheckSession)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireAuth())

	sessions := authenticated.Group("/sessions")
	{
		sessions.GET("", ctrl.Study.ListSessions)
		sessions.POST("", ctrl.Study.CreateSession)
		sessions.PUT("/:id", ctrl.Study.UpdateSession)
		sessions.DELETE("/:id", ctrl.Study.DeleteSession)
	}

	goals := authenticated.Group("/goals")
	{
		goals.GET("", ctrl.Study.ListGoals)
		goals.POST("", ctrl.Study.CreateGoal)
		goals.PUT("/:id", ctrl.Study.UpdateGoal)
		goals.DELETE("/:id", ctrl.Study.DeleteGoal)
	}

	uploads := authenticated.Group("/uploads")
	{
		uploads.GET("", ctrl.Upload.List)
		uploads.POST("", ctrl.Upload.Upload)
		uploads.DELETE("/:id", ctrl.Upload.Delete)
	}

	quizzes := authenticated.Group("/quizzes")
	{
		quizzes.POST("/generate", ctrl.Quiz.Generate)
		quizzes.GET("", ctrl.Quiz.List)
		quizzes.GET("/:id", ctrl.Quiz.Get)
		quizzes.DELETE("/:id", ctrl.Quiz.Delete)
		quizzes.POST("/:id/submit", ctrl.Quiz.Submit)
		quizzes.GET("/:id/results", ctrl.Quiz.Results)
	}

	recommendations := authenticated.Group("/recommendations")
	{
		recommendations.GET("/generate", ctrl.Recommendation.Generate)
		recommendations.GET("/subjects", ctrl.Recommendation.Subjects)
	}
}
