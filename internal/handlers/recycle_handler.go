package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/recycle"
)

// RecycleHandler exposes the recycle bin. Admin only (enforced at the route).
type RecycleHandler struct {
	engine *recycle.Engine
}

func NewRecycleHandler(engine *recycle.Engine) *RecycleHandler {
	return &RecycleHandler{engine: engine}
}

func (h *RecycleHandler) List(c *fiber.Ctx) error {
	contents, err := h.engine.Trash(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, contents)
}

func (h *RecycleHandler) RestoreCircuit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	counts, err := h.engine.RestoreCircuitCourt(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Circuit court restored", counts)
}

func (h *RecycleHandler) RestoreMagisterial(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	counts, err := h.engine.RestoreMagisterialCourt(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Magisterial court restored", counts)
}

func (h *RecycleHandler) RestoreStaff(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	if err := h.engine.RestoreStaff(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Staff member restored", nil)
}

func (h *RecycleHandler) PurgeCircuit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	if err := h.engine.PurgeCircuitCourt(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Circuit court permanently deleted", nil)
}

func (h *RecycleHandler) PurgeMagisterial(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}

	if err := h.engine.PurgeMagisterialCourt(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Magisterial court permanently deleted", nil)
}

func (h *RecycleHandler) PurgeStaff(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	if err := h.engine.PurgeStaff(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Staff member permanently deleted", nil)
}

func (h *RecycleHandler) Empty(c *fiber.Ctx) error {
	if err := h.engine.EmptyTrash(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Recycle bin emptied", nil)
}
