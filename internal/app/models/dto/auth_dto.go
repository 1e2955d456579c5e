package dto

import "github.com/yigit/studyhub/internal/app/models"

// SignupRequest represents a new account
type SignupRequest struct {
	Username string `json:"username" binding:"required" example:"ada"`
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret1"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// UserResponse represents the public part of a user
type UserResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"ada"`
	Email    string `json:"email" example:"ada@example.com"`
}

// NewUserResponse strips private fields from a user
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{ID: user.ID, Username: user.Username, Email: user.Email}
}

// AuthResponse is returned by signup and login; the session itself travels in a cookie
type AuthResponse struct {
	Message string        `json:"message" example:"Login successful"`
	User    *UserResponse `json:"user"`
}

// SessionStatusResponse reports whether the caller holds a live session
type SessionStatusResponse struct {
	LoggedIn bool          `json:"loggedIn"`
	User     *UserResponse `json:"user,omitempty"`
}
