package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/courtsys/judiciary-backend/internal/models"
)

type CreateStaffRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position"`
	Department string `json:"department,omitempty"`

	CourtID   uuid.UUID        `json:"court_id"`
	CourtKind models.CourtKind `json:"court_kind"`

	HireDate         *time.Time              `json:"hire_date,omitempty"`
	Salary           float64                 `json:"salary,omitempty"`
	EmploymentStatus models.EmploymentStatus `json:"employment_status,omitempty"`

	Address          datatypes.JSON `json:"address,omitempty"`
	EmergencyContact datatypes.JSON `json:"emergency_contact,omitempty"`
	SupervisorID     *uuid.UUID     `json:"supervisor_id,omitempty"`
	Notes            string         `json:"notes,omitempty"`
}

type UpdateStaffRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`

	Salary           *float64                 `json:"salary,omitempty"`
	EmploymentStatus *models.EmploymentStatus `json:"employment_status,omitempty"`

	Address          *datatypes.JSON `json:"address,omitempty"`
	EmergencyContact *datatypes.JSON `json:"emergency_contact,omitempty"`
	SupervisorID     *uuid.UUID      `json:"supervisor_id,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
}

type StaffStats struct {
	Total    int64                             `json:"total"`
	ByStatus map[models.EmploymentStatus]int64 `json:"by_status"`
	ByKind   map[models.CourtKind]int64        `json:"by_court_kind"`
}
