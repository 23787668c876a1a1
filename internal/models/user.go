package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a user's system role, which also fixes the kind of court the
// account may be affiliated with.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCircuit     Role = "circuit"
	RoleMagisterial Role = "magisterial"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCircuit || r == RoleMagisterial
}

// CourtKind returns the court kind a non-admin role must be affiliated with.
func (r Role) CourtKind() (CourtKind, bool) {
	switch r {
	case RoleCircuit:
		return CourtKindCircuit, true
	case RoleMagisterial:
		return CourtKindMagisterial, true
	default:
		return "", false
	}
}

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Role     Role   `gorm:"size:20;not null;default:'magisterial'" json:"role"`

	// Court affiliation. Required for non-admin roles; CircuitCourtID is the
	// parent circuit and is required for magisterial users.
	CourtID        *uuid.UUID `gorm:"type:uuid;index" json:"court_id,omitempty"`
	CourtKind      CourtKind  `gorm:"size:20" json:"court_kind,omitempty"`
	CircuitCourtID *uuid.UUID `gorm:"type:uuid;index" json:"circuit_court_id,omitempty"`

	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// CourtRef returns the user's court affiliation as a tagged reference.
func (u *User) CourtRef() (CourtRef, bool) {
	if u.CourtID == nil || !u.CourtKind.Valid() {
		return CourtRef{}, false
	}
	return CourtRef{Kind: u.CourtKind, ID: *u.CourtID}, true
}

func (User) TableName() string {
	return "users"
}
