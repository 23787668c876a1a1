package recycle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/models"
)

// SoftDeleteStaff trashes a single staff record, tagging it with its court's
// name for recycle-bin rendering. Courts are untouched.
func (e *Engine) SoftDeleteStaff(ctx context.Context, id uuid.UUID) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff models.Staff
		if err := tx.First(&staff, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStaffNotFound
			}
			return err
		}

		courtName := ""
		if court, err := models.ResolveCourt(tx, staff.CourtRefValue()); err == nil {
			courtName = court.Name
		}

		return tx.Model(&models.Staff{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"deleted_at":         time.Now().UTC(),
				"deleted_court_name": courtName,
			}).Error
	})
}

// RestoreStaff un-trashes a single staff record. The court it references must
// be active, otherwise the restore fails with ErrDanglingParent.
func (e *Engine) RestoreStaff(ctx context.Context, id uuid.UUID) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff models.Staff
		if err := tx.Unscoped().First(&staff, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStaffNotFound
			}
			return err
		}
		if !staff.DeletedAt.Valid {
			return ErrNotTrashed
		}

		court, err := models.ResolveCourt(tx, staff.CourtRefValue())
		if err != nil || !court.Active() {
			return ErrDanglingParent
		}

		return tx.Unscoped().Model(&models.Staff{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"deleted_at":         nil,
				"deleted_court_name": "",
			}).Error
	})
}
