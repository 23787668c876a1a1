package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourtKind discriminates which court table a polymorphic reference points at.
type CourtKind string

const (
	CourtKindCircuit     CourtKind = "circuit"
	CourtKindMagisterial CourtKind = "magisterial"
)

func (k CourtKind) Valid() bool {
	return k == CourtKindCircuit || k == CourtKindMagisterial
}

// CourtRef is a tagged reference to either a circuit or a magisterial court.
type CourtRef struct {
	Kind CourtKind
	ID   uuid.UUID
}

var ErrCourtNotFound = errors.New("court not found")

// Court is the common view of a resolved court reference.
type Court struct {
	ID        uuid.UUID
	Kind      CourtKind
	Name      string
	Location  string
	DeletedAt gorm.DeletedAt
}

func (c Court) Active() bool {
	return !c.DeletedAt.Valid
}

// ResolveCourt looks up a court reference against the table its kind selects.
// Trashed courts resolve too; callers that need an active court check Active().
func ResolveCourt(db *gorm.DB, ref CourtRef) (Court, error) {
	switch ref.Kind {
	case CourtKindCircuit:
		var cc CircuitCourt
		if err := db.Unscoped().First(&cc, "id = ?", ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Court{}, ErrCourtNotFound
			}
			return Court{}, err
		}
		return Court{ID: cc.ID, Kind: CourtKindCircuit, Name: cc.Name, Location: cc.Location, DeletedAt: cc.DeletedAt}, nil
	case CourtKindMagisterial:
		var mc MagisterialCourt
		if err := db.Unscoped().First(&mc, "id = ?", ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Court{}, ErrCourtNotFound
			}
			return Court{}, err
		}
		return Court{ID: mc.ID, Kind: CourtKindMagisterial, Name: mc.Name, Location: mc.Location, DeletedAt: mc.DeletedAt}, nil
	default:
		return Court{}, ErrCourtNotFound
	}
}
