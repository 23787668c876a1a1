package authz

import (
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/models"
)

// Principal is the authenticated caller as carried by an access token.
type Principal struct {
	UserID         uuid.UUID
	Username       string
	Role           models.Role
	CourtID        uuid.UUID
	CourtKind      models.CourtKind
	CircuitCourtID uuid.UUID
}

func (p Principal) Subject() Subject {
	return Subject{
		Role:           p.Role,
		CourtID:        p.CourtID,
		CircuitCourtID: p.CircuitCourtID,
	}
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// PrincipalFromUser builds a Principal from a stored user record.
func PrincipalFromUser(u *models.User) Principal {
	p := Principal{
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CourtKind: u.CourtKind,
	}
	if u.CourtID != nil {
		p.CourtID = *u.CourtID
	}
	if u.CircuitCourtID != nil {
		p.CircuitCourtID = *u.CircuitCourtID
	}
	return p
}
