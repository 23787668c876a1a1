package dto

import (
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/models"
)

type CreateUserRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`

	CourtID        *uuid.UUID       `json:"court_id,omitempty"`
	CourtKind      models.CourtKind `json:"court_kind,omitempty"`
	CircuitCourtID *uuid.UUID       `json:"circuit_court_id,omitempty"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type UserStats struct {
	Total  int64                 `json:"total"`
	ByRole map[models.Role]int64 `json:"by_role"`
	Active int64                 `json:"active"`
}
