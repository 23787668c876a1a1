package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/courtsys/judiciary-backend/internal/models"
)

// CreateCircuitCourtRequest creates the court and its administrator account
// in one transaction.
type CreateCircuitCourtRequest struct {
	Name     string         `json:"name"`
	Location string         `json:"location"`
	Address  datatypes.JSON `json:"address,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Email    string         `json:"email,omitempty"`
	Website  string         `json:"website,omitempty"`

	Jurisdiction    string     `json:"jurisdiction,omitempty"`
	ChiefJudge      string     `json:"chief_judge,omitempty"`
	Description     string     `json:"description,omitempty"`
	EstablishedDate *time.Time `json:"established_date,omitempty"`

	// Administrator account
	AdminUsername string `json:"username"`
	AdminPassword string `json:"password"`
	AdminEmail    string `json:"admin_email"`
	AdminName     string `json:"admin_name,omitempty"`
}

type UpdateCircuitCourtRequest struct {
	Name         *string         `json:"name,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Address      *datatypes.JSON `json:"address,omitempty"`
	Phone        *string         `json:"phone,omitempty"`
	Email        *string         `json:"email,omitempty"`
	Website      *string         `json:"website,omitempty"`
	Jurisdiction *string         `json:"jurisdiction,omitempty"`
	ChiefJudge   *string         `json:"chief_judge,omitempty"`
	Description  *string         `json:"description,omitempty"`
}

// CreateMagisterialCourtRequest creates the court and its magistrate account
// in one transaction.
type CreateMagisterialCourtRequest struct {
	Name     string         `json:"name"`
	Location string         `json:"location"`
	Address  datatypes.JSON `json:"address,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Email    string         `json:"email,omitempty"`

	Jurisdiction    string               `json:"jurisdiction,omitempty"`
	Category        models.CourtCategory `json:"category,omitempty"`
	OperatingHours  datatypes.JSON       `json:"operating_hours,omitempty"`
	Description     string               `json:"description,omitempty"`
	EstablishedDate *time.Time           `json:"established_date,omitempty"`

	// Magistrate account
	MagistrateUsername string `json:"username"`
	MagistratePassword string `json:"password"`
	MagistrateEmail    string `json:"magistrate_email"`
	MagistrateName     string `json:"magistrate_name,omitempty"`
}

type UpdateMagisterialCourtRequest struct {
	Name           *string               `json:"name,omitempty"`
	Location       *string               `json:"location,omitempty"`
	Address        *datatypes.JSON       `json:"address,omitempty"`
	Phone          *string               `json:"phone,omitempty"`
	Email          *string               `json:"email,omitempty"`
	Jurisdiction   *string               `json:"jurisdiction,omitempty"`
	Category       *models.CourtCategory `json:"category,omitempty"`
	OperatingHours *datatypes.JSON       `json:"operating_hours,omitempty"`
	Description    *string               `json:"description,omitempty"`
}

// CircuitCourtCreated is the create-endpoint payload: court plus its new
// administrator account.
type CircuitCourtCreated struct {
	Court         models.CircuitCourt `json:"court"`
	Administrator UserResponse        `json:"administrator"`
}

type MagisterialCourtCreated struct {
	Court      models.MagisterialCourt `json:"court"`
	Magistrate UserResponse            `json:"magistrate"`
}

type CourtStats struct {
	CircuitCourts     int64 `json:"circuit_courts"`
	MagisterialCourts int64 `json:"magisterial_courts"`
	TotalCourts       int64 `json:"total_courts"`
}
