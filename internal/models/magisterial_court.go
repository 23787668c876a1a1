package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourtCategory classifies a magisterial court.
type CourtCategory string

const (
	CourtCategoryMunicipal CourtCategory = "municipal"
	CourtCategoryDistrict  CourtCategory = "district"
	CourtCategoryCounty    CourtCategory = "county"
	CourtCategoryOther     CourtCategory = "other"
)

func (c CourtCategory) Valid() bool {
	switch c {
	case CourtCategoryMunicipal, CourtCategoryDistrict, CourtCategoryCounty, CourtCategoryOther:
		return true
	}
	return false
}

type MagisterialCourt struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string         `gorm:"size:200;not null;index" json:"name"`
	Location string         `gorm:"size:200;not null;index" json:"location"`
	Address  datatypes.JSON `json:"address,omitempty"`
	Phone    string         `gorm:"size:50" json:"phone,omitempty"`
	Email    string         `gorm:"size:255" json:"email,omitempty"`

	CircuitCourtID uuid.UUID `gorm:"type:uuid;not null;index" json:"circuit_court_id"`
	MagistrateID   uuid.UUID `gorm:"type:uuid;not null;index" json:"magistrate_id"`

	Jurisdiction    string         `gorm:"type:text" json:"jurisdiction,omitempty"`
	Category        CourtCategory  `gorm:"size:20;not null;default:'municipal'" json:"category"`
	OperatingHours  datatypes.JSON `json:"operating_hours,omitempty"`
	Description     string         `gorm:"size:1000" json:"description,omitempty"`
	EstablishedDate *time.Time     `json:"established_date,omitempty"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`

	// Set when the court is trashed by a circuit-court cascade so the recycle
	// bin can show the parent without a join.
	DeletedParentName string `gorm:"size:200" json:"deleted_parent_name,omitempty"`

	CircuitCourt *CircuitCourt `gorm:"foreignKey:CircuitCourtID" json:"circuit_court,omitempty"`
	Magistrate   *User         `gorm:"foreignKey:MagistrateID" json:"magistrate,omitempty"`
}

func (m *MagisterialCourt) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (MagisterialCourt) TableName() string {
	return "magisterial_courts"
}
