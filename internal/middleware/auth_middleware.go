package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
)

// Authenticator resolves a session token to the user it belongs to
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (userID int64, sessionID string, err error)
}

// AuthMiddleware reads the session cookie, or a Bearer header as a fallback
type AuthMiddleware struct {
	authenticator Authenticator
	cookieName    string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		cookieName:    cookieName,
	}
}

func (m *AuthMiddleware) token(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie, nil
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return "", apperrors.ErrUnauthenticated
	}
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return "", apperrors.ErrTokenInvalid
	}
	return token, nil
}

// RequireAuth rejects requests without a live session
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := m.token(c)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		userID, sessionID, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}

// OptionalAuth sets the user when a live session is present and never rejects
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := m.token(c)
		if err == nil {
			if userID, sessionID, err := m.authenticator.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextSessionID, sessionID)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth
func UserID(c *gin.Context) (int64, error) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, apperrors.ErrUnauthenticated
	}
	userID, ok := value.(int64)
	if !ok {
		return 0, errors.New("invalid user id in request context")
	}
	return userID, nil
}

// SessionID returns the session id of the request, or "" when there is none
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
