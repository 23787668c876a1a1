package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/middleware"
	"github.com/courtsys/judiciary-backend/internal/services"
)

type CourtHandler struct {
	courtService *services.CourtService
}

func NewCourtHandler(courtService *services.CourtService) *CourtHandler {
	return &CourtHandler{courtService: courtService}
}

func (h *CourtHandler) ListCircuits(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	courts, err := h.courtService.ListCircuits(p)
	if err != nil {
		return respondError(c, err)
	}
	return dto.List(c, courts, len(courts))
}

func (h *CourtHandler) GetCircuit(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	court, err := h.courtService.GetCircuit(p, id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, court)
}

func (h *CourtHandler) CreateCircuit(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateCircuitCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := h.courtService.CreateCircuit(p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.Created(c, "Circuit court created successfully", created)
}

func (h *CourtHandler) UpdateCircuit(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	var req dto.UpdateCircuitCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	court, err := h.courtService.UpdateCircuit(p, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Circuit court updated successfully", court)
}

// DeleteCircuit moves the court and its whole subtree to the recycle bin and
// reports how many dependent records the cascade touched.
func (h *CourtHandler) DeleteCircuit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	counts, err := h.courtService.DeleteCircuit(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Circuit court moved to recycle bin", counts)
}

func (h *CourtHandler) ListMagisterials(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	circuitID, err := uuid.Parse(c.Params("circuitId"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid circuit court ID")
	}

	courts, err := h.courtService.ListMagisterials(p, circuitID)
	if err != nil {
		return respondError(c, err)
	}
	return dto.List(c, courts, len(courts))
}

func (h *CourtHandler) CreateMagisterial(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	circuitID, err := uuid.Parse(c.Params("circuitId"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid circuit court ID")
	}

	var req dto.CreateMagisterialCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := h.courtService.CreateMagisterial(p, circuitID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.Created(c, "Magisterial court created successfully", created)
}

func (h *CourtHandler) GetMagisterial(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	court, err := h.courtService.GetMagisterial(p, id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, court)
}

func (h *CourtHandler) UpdateMagisterial(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	var req dto.UpdateMagisterialCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	court, err := h.courtService.UpdateMagisterial(p, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Magisterial court updated successfully", court)
}

func (h *CourtHandler) DeleteMagisterial(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	counts, err := h.courtService.DeleteMagisterial(c.UserContext(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Magisterial court moved to recycle bin", counts)
}

func (h *CourtHandler) Stats(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	stats, err := h.courtService.Stats(p)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, stats)
}
