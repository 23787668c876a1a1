package recycle

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/models"
)

// PurgeCircuitCourt permanently erases a trashed circuit court and its
// already-trashed magisterial courts, staff and user accounts. Irreversible.
func (e *Engine) PurgeCircuitCourt(ctx context.Context, id uuid.UUID) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var circuit models.CircuitCourt
		if err := tx.Unscoped().First(&circuit, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourtNotFound
			}
			return err
		}
		if !circuit.DeletedAt.Valid {
			return ErrNotTrashed
		}

		var mags []models.MagisterialCourt
		if err := tx.Unscoped().
			Find(&mags, "circuit_court_id = ? AND deleted_at IS NOT NULL", id).Error; err != nil {
			return err
		}

		userIDs := []uuid.UUID{circuit.AdministratorID}
		magIDs := make([]uuid.UUID, 0, len(mags))
		for _, mag := range mags {
			magIDs = append(magIDs, mag.ID)
			userIDs = append(userIDs, mag.MagistrateID)
		}

		if len(magIDs) > 0 {
			if err := tx.Unscoped().
				Where("court_kind = ? AND court_id IN ? AND deleted_at IS NOT NULL",
					models.CourtKindMagisterial, magIDs).
				Delete(&models.Staff{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", magIDs).
				Delete(&models.MagisterialCourt{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().
			Where("court_kind = ? AND court_id = ? AND deleted_at IS NOT NULL",
				models.CourtKindCircuit, id).
			Delete(&models.Staff{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("id IN ? AND deleted_at IS NOT NULL", userIDs).
			Delete(&models.User{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.CircuitCourt{}, "id = ?", id).Error
	})
}

// PurgeMagisterialCourt permanently erases a trashed magisterial court with
// its trashed staff and magistrate account.
func (e *Engine) PurgeMagisterialCourt(ctx context.Context, id uuid.UUID) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var court models.MagisterialCourt
		if err := tx.Unscoped().First(&court, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourtNotFound
			}
			return err
		}
		if !court.DeletedAt.Valid {
			return ErrNotTrashed
		}

		if err := tx.Unscoped().
			Where("court_kind = ? AND court_id = ? AND deleted_at IS NOT NULL",
				models.CourtKindMagisterial, id).
			Delete(&models.Staff{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("id = ? AND deleted_at IS NOT NULL", court.MagistrateID).
			Delete(&models.User{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.MagisterialCourt{}, "id = ?", id).Error
	})
}

// PurgeStaff permanently erases one trashed staff record.
func (e *Engine) PurgeStaff(ctx context.Context, id uuid.UUID) error {
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
		return tx.Unscoped().Delete(&models.Staff{}, "id = ?", id).Error
	})
}

// EmptyTrash permanently erases every trashed court, staff record and
// cascade-trashed user account.
func (e *Engine) EmptyTrash(ctx context.Context) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("deleted_at IS NOT NULL").
			Delete(&models.Staff{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("deleted_at IS NOT NULL").
			Delete(&models.MagisterialCourt{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("deleted_at IS NOT NULL").
			Delete(&models.CircuitCourt{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("deleted_at IS NOT NULL").
			Delete(&models.User{}).Error
	})
}
