// Package authz decides whether a caller may act on a court-scoped resource.
//
// The rules mirror the court hierarchy: admins see everything, circuit-court
// administrators see their own circuit and every magisterial court under it,
// magisterial clerks see only their own court. Evaluation is pure; the only
// external state it needs is the magisterial-to-circuit parent relation,
// injected as a Hierarchy.
package authz

import (
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/models"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

// Subject is the caller's authorization-relevant identity.
type Subject struct {
	Role           models.Role
	CourtID        uuid.UUID
	CircuitCourtID uuid.UUID
}

// Resource identifies the court scope a request targets.
type Resource struct {
	CourtKind models.CourtKind
	CourtID   uuid.UUID
}

// Hierarchy resolves a magisterial court to its parent circuit court.
// Implementations must resolve trashed courts too, so that denial never
// depends on (and therefore never leaks) a resource's active/trashed state.
type Hierarchy interface {
	CircuitOf(magisterialID uuid.UUID) (uuid.UUID, error)
}

// Evaluate applies the hierarchy rules in order, first match wins. It is
// deterministic: identical inputs always produce identical decisions.
func Evaluate(h Hierarchy, sub Subject, res Resource) Decision {
	switch sub.Role {
	case models.RoleAdmin:
		return Allow

	case models.RoleCircuit:
		if res.CourtKind == models.CourtKindCircuit && res.CourtID == sub.CourtID {
			return Allow
		}
		if res.CourtKind == models.CourtKindMagisterial {
			parent, err := h.CircuitOf(res.CourtID)
			if err == nil && parent == sub.CourtID {
				return Allow
			}
		}
		return Deny

	case models.RoleMagisterial:
		if res.CourtKind == models.CourtKindMagisterial && res.CourtID == sub.CourtID {
			return Allow
		}
		return Deny

	default:
		return Deny
	}
}
