package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/recycle"
	"github.com/courtsys/judiciary-backend/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses inside the
// uniform envelope. Unknown errors are logged and surface as 500.
func respondError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return dto.FailValidation(c, ve.Fields)
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled),
		errors.Is(err, services.ErrInvalidToken):
		return dto.Fail(c, fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrAccessDenied):
		return dto.Fail(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCourtNotFound),
		errors.Is(err, services.ErrStaffNotFound),
		errors.Is(err, recycle.ErrCourtNotFound),
		errors.Is(err, recycle.ErrStaffNotFound):
		return dto.Fail(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInactiveParent),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, recycle.ErrNotTrashed),
		errors.Is(err, recycle.ErrAlreadyTrashed),
		errors.Is(err, recycle.ErrDanglingParent):
		return dto.Fail(c, fiber.StatusConflict, err.Error())

	default:
		slog.Error("request failed",
			"error", err,
			"method", c.Method(),
			"path", c.Path(),
		)
		return dto.Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
