package dto

import "github.com/rssb/sewadar-backend/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	ZonalID  string `json:"zonalId" binding:"required" example:"ZN-1042"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"3600"`
}

// AuthResponse represents successful authentication response. Capabilities
// list the role-gated areas the client may render for this account.
type AuthResponse struct {
	Token        TokenResponse   `json:"token"`
	Sewadar      *models.Sewadar `json:"sewadar"`
	Capabilities []string        `json:"capabilities" example:"APPLY_TO_PROGRAMS"`
}

// ChangePasswordRequest represents a password change for the logged-in account
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
