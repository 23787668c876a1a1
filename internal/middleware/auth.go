package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/authz"
	"github.com/courtsys/judiciary-backend/internal/config"
	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/models"
)

// JWTProtected rejects requests without a valid bearer token. Missing or
// invalid credentials yield 401, distinct from the 403 the role gates return.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized: invalid or expired token")
		},
	})
}

var errNoPrincipal = errors.New("no authenticated principal in context")

// GetPrincipal rebuilds the caller's identity from the verified JWT claims.
func GetPrincipal(c *fiber.Ctx) (authz.Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return authz.Principal{}, errNoPrincipal
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Principal{}, errNoPrincipal
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return authz.Principal{}, errNoPrincipal
	}

	p := authz.Principal{UserID: userID}
	if username, ok := claims["username"].(string); ok {
		p.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = models.Role(role)
	}
	if courtID, ok := claims["court_id"].(string); ok {
		if id, err := uuid.Parse(courtID); err == nil {
			p.CourtID = id
		}
	}
	if kind, ok := claims["court_kind"].(string); ok {
		p.CourtKind = models.CourtKind(kind)
	}
	if circuitID, ok := claims["circuit_id"].(string); ok {
		if id, err := uuid.Parse(circuitID); err == nil {
			p.CircuitCourtID = id
		}
	}
	return p, nil
}
