package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/auth"
)

// AccountService is what the auth endpoints need from the auth service
type AccountService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, *auth.SessionToken, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *auth.SessionToken, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
	SessionTTL() int
}

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthController handles authentication related operations
type AuthController struct {
	authService AccountService
	cookie      CookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AccountService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, token, maxAge, "/", "", c.cookie.Secure, true)
}

// Signup handles user registration
// @Summary Register a new user
// @Description Creates an account and starts a session. The session is returned as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "User created"
// @Failure 400 {object} dto.APIResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.APIResponse "Email or username already exists"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, token, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token.Token, c.authService.SessionTTL())
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.AuthResponse{Message: "User created successfully", User: dto.NewUserResponse(user)},
	})
}

// Login handles user login
// @Summary User login
// @Description Verifies email and password and starts a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Invalid request format"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	c.setSessionCookie(ctx, token.Token, c.authService.SessionTTL())
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AuthResponse{Message: "Login successful", User: dto.NewUserResponse(user)},
	})
}

// Logout ends the current session
// @Summary Logout
// @Description Revokes the session and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.APIResponse "Not logged in"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), middleware.SessionID(ctx)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to revoke session")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged out successfully"}})
}

// CheckSession reports whether the caller is logged in
// @Summary Check session
// @Description Returns the current user when a live session cookie is present
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SessionStatusResponse}
// @Router /auth/check-session [get]
func (c *AuthController) CheckSession(ctx *gin.Context) {
	userID, err := middleware.UserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SessionStatusResponse{LoggedIn: false}})
		return
	}

	user, err := c.authService.CurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Session refers to a missing user")
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SessionStatusResponse{LoggedIn: false}})
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SessionStatusResponse{LoggedIn: true, User: dto.NewUserResponse(user)},
	})
}
