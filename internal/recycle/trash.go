package recycle

import (
	"context"

	"github.com/courtsys/judiciary-backend/internal/models"
)

// TrashContents is the recycle-bin view across all entity kinds.
type TrashContents struct {
	CircuitCourts     []models.CircuitCourt     `json:"circuit_courts"`
	MagisterialCourts []models.MagisterialCourt `json:"magisterial_courts"`
	Staff             []models.Staff            `json:"staff"`
}

// Trash lists every trashed court and staff record, newest deletions first.
func (e *Engine) Trash(ctx context.Context) (TrashContents, error) {
	var contents TrashContents
	db := e.db.WithContext(ctx)

	if err := db.Unscoped().Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").Find(&contents.CircuitCourts).Error; err != nil {
		return TrashContents{}, err
	}
	if err := db.Unscoped().Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").Find(&contents.MagisterialCourts).Error; err != nil {
		return TrashContents{}, err
	}
	if err := db.Unscoped().Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").Find(&contents.Staff).Error; err != nil {
		return TrashContents{}, err
	}
	return contents, nil
}
