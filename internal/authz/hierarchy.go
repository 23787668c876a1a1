package authz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/models"
)

var ErrUnknownCourt = errors.New("unknown magisterial court")

// GormHierarchy resolves parent circuits from the magisterial_courts table,
// including trashed rows.
type GormHierarchy struct {
	db *gorm.DB
}

func NewGormHierarchy(db *gorm.DB) *GormHierarchy {
	return &GormHierarchy{db: db}
}

func (h *GormHierarchy) CircuitOf(magisterialID uuid.UUID) (uuid.UUID, error) {
	var court models.MagisterialCourt
	err := h.db.Unscoped().Select("circuit_court_id").First(&court, "id = ?", magisterialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrUnknownCourt
		}
		return uuid.Nil, err
	}
	return court.CircuitCourtID, nil
}
