package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmploymentStatus is a staff member's employment state.
type EmploymentStatus string

const (
	EmploymentActive    EmploymentStatus = "active"
	EmploymentRetired   EmploymentStatus = "retired"
	EmploymentDismissed EmploymentStatus = "dismissed"
	EmploymentOnLeave   EmploymentStatus = "on_leave"
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentActive, EmploymentRetired, EmploymentDismissed, EmploymentOnLeave:
		return true
	}
	return false
}

// Terminal reports whether the status ends active service and should stamp
// StatusChangeDate.
func (s EmploymentStatus) Terminal() bool {
	return s == EmploymentRetired || s == EmploymentDismissed
}

type Staff struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name       string `gorm:"size:100;not null;index" json:"name"`
	Email      string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"size:50" json:"phone,omitempty"`
	Position   string `gorm:"size:100;not null;index" json:"position"`
	Department string `gorm:"size:100" json:"department,omitempty"`

	// Polymorphic court affiliation, resolved through CourtKind.
	CourtID   uuid.UUID `gorm:"type:uuid;not null;index:idx_staff_court" json:"court_id"`
	CourtKind CourtKind `gorm:"size:20;not null;index:idx_staff_court" json:"court_kind"`

	EmployeeID       string           `gorm:"size:20;uniqueIndex" json:"employee_id"`
	HireDate         time.Time        `json:"hire_date"`
	Salary           float64          `json:"salary,omitempty"`
	EmploymentStatus EmploymentStatus `gorm:"size:20;not null;default:'active';index" json:"employment_status"`
	StatusChangeDate *time.Time       `json:"status_change_date,omitempty"`

	Address          datatypes.JSON `json:"address,omitempty"`
	EmergencyContact datatypes.JSON `json:"emergency_contact,omitempty"`
	Notes            string         `gorm:"size:1000" json:"notes,omitempty"`

	SupervisorID     *uuid.UUID `gorm:"type:uuid;index" json:"supervisor_id,omitempty"`
	CreatedByID      *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	LastModifiedByID *uuid.UUID `gorm:"type:uuid" json:"last_modified_by,omitempty"`

	// Set when the record is trashed by a court cascade so the recycle bin can
	// show the court without a join.
	DeletedCourtName string `gorm:"size:200" json:"deleted_court_name,omitempty"`

	Supervisor *Staff `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CourtRefValue returns the staff member's court as a tagged reference.
func (s *Staff) CourtRefValue() CourtRef {
	return CourtRef{Kind: s.CourtKind, ID: s.CourtID}
}

func (Staff) TableName() string {
	return "staff"
}
