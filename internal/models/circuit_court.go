package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CircuitCourt struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string         `gorm:"size:200;not null;index" json:"name"`
	Location string         `gorm:"size:200;not null;index" json:"location"`
	Address  datatypes.JSON `json:"address,omitempty"`
	Phone    string         `gorm:"size:50" json:"phone,omitempty"`
	Email    string         `gorm:"size:255" json:"email,omitempty"`
	Website  string         `gorm:"size:255" json:"website,omitempty"`

	Jurisdiction    string     `gorm:"type:text" json:"jurisdiction,omitempty"`
	ChiefJudge      string     `gorm:"size:200" json:"chief_judge,omitempty"`
	Description     string     `gorm:"size:1000" json:"description,omitempty"`
	EstablishedDate *time.Time `json:"established_date,omitempty"`

	AdministratorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"administrator_id"`
	CreatedByID     *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`

	Administrator     *User              `gorm:"foreignKey:AdministratorID" json:"administrator,omitempty"`
	MagisterialCourts []MagisterialCourt `gorm:"foreignKey:CircuitCourtID" json:"magisterial_courts,omitempty"`
}

func (c *CircuitCourt) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CircuitCourt) TableName() string {
	return "circuit_courts"
}
