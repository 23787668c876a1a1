package dto

import (
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/models"
)

type LoginRequest struct {
	// Username accepts a username or an email address.
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID             uuid.UUID        `json:"id"`
	Username       string           `json:"username"`
	Email          string           `json:"email"`
	Name           string           `json:"name"`
	Role           models.Role      `json:"role"`
	CourtID        *uuid.UUID       `json:"court_id,omitempty"`
	CourtKind      models.CourtKind `json:"court_kind,omitempty"`
	CircuitCourtID *uuid.UUID       `json:"circuit_court_id,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		CourtID:        u.CourtID,
		CourtKind:      u.CourtKind,
		CircuitCourtID: u.CircuitCourtID,
	}
}
