package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/models"
)

// AdminRequired gates a route to system administrators.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := GetPrincipal(c)
		if err != nil {
			return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if p.Role != models.RoleAdmin {
			return dto.Fail(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// CircuitOrAdminRequired gates a route to circuit-court administrators and
// system administrators.
func CircuitOrAdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := GetPrincipal(c)
		if err != nil {
			return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if p.Role != models.RoleAdmin && p.Role != models.RoleCircuit {
			return dto.Fail(c, fiber.StatusForbidden, "Circuit court or admin access required")
		}
		return c.Next()
	}
}
