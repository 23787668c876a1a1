// Package recycle owns the active/trashed partition of courts and staff.
//
// Every state flip runs through the Engine inside a single transaction, so a
// concurrent reader never observes a half-cascaded subtree. The invariant it
// maintains: a staff record or magisterial court is active if and only if
// every ancestor in its court chain is active.
package recycle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/models"
)

var (
	ErrCourtNotFound  = errors.New("court not found")
	ErrStaffNotFound  = errors.New("staff record not found")
	ErrNotTrashed     = errors.New("entity is not in the recycle bin")
	ErrAlreadyTrashed = errors.New("entity is already in the recycle bin")
	// ErrDanglingParent means a restore would leave a child active under a
	// missing or trashed parent.
	ErrDanglingParent = errors.New("parent circuit court is missing or trashed")
)

// Counts reports the dependent records touched by a cascade.
type Counts struct {
	MagisterialCourts int64 `json:"magisterial_courts"`
	Staff             int64 `json:"staff"`
}

type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// SoftDeleteCircuitCourt trashes a circuit court together with its
// magisterial courts, all staff under either, and the associated
// administrator and magistrate accounts. Every record in the cascade shares
// one deletion timestamp.
func (e *Engine) SoftDeleteCircuitCourt(ctx context.Context, id uuid.UUID) (Counts, error) {
	var counts Counts
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var circuit models.CircuitCourt
		if err := tx.First(&circuit, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourtNotFound
			}
			return err
		}

		ts := time.Now().UTC()

		var mags []models.MagisterialCourt
		if err := tx.Find(&mags, "circuit_court_id = ?", id).Error; err != nil {
			return err
		}

		userIDs := []uuid.UUID{circuit.AdministratorID}
		for _, mag := range mags {
			err := tx.Model(&models.MagisterialCourt{}).Where("id = ?", mag.ID).
				Updates(map[string]interface{}{
					"deleted_at":          ts,
					"deleted_parent_name": circuit.Name,
				}).Error
			if err != nil {
				return err
			}
			res := tx.Model(&models.Staff{}).
				Where("court_kind = ? AND court_id = ?", models.CourtKindMagisterial, mag.ID).
				Updates(map[string]interface{}{
					"deleted_at":         ts,
					"deleted_court_name": mag.Name,
				})
			if res.Error != nil {
				return res.Error
			}
			counts.Staff += res.RowsAffected
			userIDs = append(userIDs, mag.MagistrateID)
		}
		counts.MagisterialCourts = int64(len(mags))

		res := tx.Model(&models.Staff{}).
			Where("court_kind = ? AND court_id = ?", models.CourtKindCircuit, id).
			Updates(map[string]interface{}{
				"deleted_at":         ts,
				"deleted_court_name": circuit.Name,
			})
		if res.Error != nil {
			return res.Error
		}
		counts.Staff += res.RowsAffected

		if err := tx.Model(&models.User{}).Where("id IN ?", userIDs).
			Update("deleted_at", ts).Error; err != nil {
			return err
		}

		return tx.Model(&models.CircuitCourt{}).Where("id = ?", id).
			Update("deleted_at", ts).Error
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// SoftDeleteMagisterialCourt trashes one magisterial court, its staff and its
// magistrate account. The parent circuit court and sibling courts are
// untouched.
func (e *Engine) SoftDeleteMagisterialCourt(ctx context.Context, id uuid.UUID) (Counts, error) {
	var counts Counts
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var court models.MagisterialCourt
		if err := tx.First(&court, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourtNotFound
			}
			return err
		}

		var parentName string
		var parent models.CircuitCourt
		if err := tx.Unscoped().Select("name").First(&parent, "id = ?", court.CircuitCourtID).Error; err == nil {
			parentName = parent.Name
		}

		ts := time.Now().UTC()

		res := tx.Model(&models.Staff{}).
			Where("court_kind = ? AND court_id = ?", models.CourtKindMagisterial, id).
			Updates(map[string]interface{}{
				"deleted_at":         ts,
				"deleted_court_name": court.Name,
			})
		if res.Error != nil {
			return res.Error
		}
		counts.Staff = res.RowsAffected

		if err := tx.Model(&models.User{}).Where("id = ?", court.MagistrateID).
			Update("deleted_at", ts).Error; err != nil {
			return err
		}

		return tx.Model(&models.MagisterialCourt{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"deleted_at":          ts,
				"deleted_parent_name": parentName,
			}).Error
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// RestoreCircuitCourt un-trashes a circuit court, then every magisterial
// court and staff record that fell with it, and the associated user accounts.
// Cascade members are identified by the shared deletion timestamp, so records
// trashed on their own before the cascade stay in the recycle bin.
// Parent-before-child ordering keeps the hierarchy invariant if the
// transaction is ever split.
func (e *Engine) RestoreCircuitCourt(ctx context.Context, id uuid.UUID) (Counts, error) {
	var counts Counts
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
		ts := circuit.DeletedAt.Time

		if err := tx.Unscoped().Model(&models.CircuitCourt{}).Where("id = ?", id).
			Update("deleted_at", nil).Error; err != nil {
			return err
		}

		var mags []models.MagisterialCourt
		if err := tx.Unscoped().
			Find(&mags, "circuit_court_id = ? AND deleted_at = ?", id, ts).Error; err != nil {
			return err
		}

		userIDs := []uuid.UUID{circuit.AdministratorID}
		magIDs := make([]uuid.UUID, 0, len(mags))
		for _, mag := range mags {
			magIDs = append(magIDs, mag.ID)
			userIDs = append(userIDs, mag.MagistrateID)
		}
		counts.MagisterialCourts = int64(len(mags))

		if len(magIDs) > 0 {
			err := tx.Unscoped().Model(&models.MagisterialCourt{}).Where("id IN ?", magIDs).
				Updates(map[string]interface{}{
					"deleted_at":          nil,
					"deleted_parent_name": "",
				}).Error
			if err != nil {
				return err
			}

			res := tx.Unscoped().Model(&models.Staff{}).
				Where("court_kind = ? AND court_id IN ? AND deleted_at = ?",
					models.CourtKindMagisterial, magIDs, ts).
				Updates(map[string]interface{}{
					"deleted_at":         nil,
					"deleted_court_name": "",
				})
			if res.Error != nil {
				return res.Error
			}
			counts.Staff += res.RowsAffected
		}

		res := tx.Unscoped().Model(&models.Staff{}).
			Where("court_kind = ? AND court_id = ? AND deleted_at = ?",
				models.CourtKindCircuit, id, ts).
			Updates(map[string]interface{}{
				"deleted_at":         nil,
				"deleted_court_name": "",
			})
		if res.Error != nil {
			return res.Error
		}
		counts.Staff += res.RowsAffected

		return tx.Unscoped().Model(&models.User{}).
			Where("id IN ? AND deleted_at = ?", userIDs, ts).
			Update("deleted_at", nil).Error
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// RestoreMagisterialCourt un-trashes one magisterial court with the staff and
// magistrate account that fell in the same cascade. It refuses with
// ErrDanglingParent, mutating nothing, when the recorded parent circuit court
// is absent or still trashed.
func (e *Engine) RestoreMagisterialCourt(ctx context.Context, id uuid.UUID) (Counts, error) {
	var counts Counts
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
		ts := court.DeletedAt.Time

		var parent models.CircuitCourt
		err := tx.First(&parent, "id = ?", court.CircuitCourtID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDanglingParent
			}
			return err
		}

		if err := tx.Unscoped().Model(&models.MagisterialCourt{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"deleted_at":          nil,
				"deleted_parent_name": "",
			}).Error; err != nil {
			return err
		}

		res := tx.Unscoped().Model(&models.Staff{}).
			Where("court_kind = ? AND court_id = ? AND deleted_at = ?",
				models.CourtKindMagisterial, id, ts).
			Updates(map[string]interface{}{
				"deleted_at":         nil,
				"deleted_court_name": "",
			})
		if res.Error != nil {
			return res.Error
		}
		counts.Staff = res.RowsAffected

		return tx.Unscoped().Model(&models.User{}).
			Where("id = ? AND deleted_at = ?", court.MagistrateID, ts).
			Update("deleted_at", nil).Error
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}
