package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/middleware"
	"github.com/courtsys/judiciary-backend/internal/models"
	"github.com/courtsys/judiciary-backend/internal/services"
)

type StaffHandler struct {
	staffService *services.StaffService
}

func NewStaffHandler(staffService *services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

func (h *StaffHandler) List(c *fiber.Ctx) error {
	staff, err := h.staffService.ListAll(c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return dto.List(c, staff, len(staff))
}

func (h *StaffHandler) ListByCourt(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	courtID, err := uuid.Parse(c.Params("courtId"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid court ID")
	}
	kind := models.CourtKind(c.Params("kind"))

	staff, err := h.staffService.ListByCourt(p, models.CourtRef{Kind: kind, ID: courtID})
	if err != nil {
		return respondError(c, err)
	}
	return dto.List(c, staff, len(staff))
}

func (h *StaffHandler) ListByStatus(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	status := models.EmploymentStatus(c.Params("status"))

	staff, err := h.staffService.ListByStatus(p, status)
	if err != nil {
		return respondError(c, err)
	}
	return dto.List(c, staff, len(staff))
}

func (h *StaffHandler) Get(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	staff, err := h.staffService.Get(p, id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, staff)
}

func (h *StaffHandler) Create(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	staff, err := h.staffService.Create(p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.Created(c, "Staff member created successfully", staff)
}

func (h *StaffHandler) Update(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	staff, err := h.staffService.Update(p, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Staff member updated successfully", staff)
}

func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	if err := h.staffService.Delete(c.UserContext(), p, id); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Staff member moved to recycle bin", nil)
}

func (h *StaffHandler) Stats(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	stats, err := h.staffService.Stats(p)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, stats)
}
